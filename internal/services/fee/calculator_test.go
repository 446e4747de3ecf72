package fee

import (
	"math"
	"testing"

	"takapay/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBankTransferFee(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name      string
		amount    float64
		role      string
		wantFee   float64
		wantTotal float64
		wantErr   bool
	}{
		{
			name:      "consumer pays 1.5 percent",
			amount:    10000,
			role:      models.RoleUser,
			wantFee:   150,
			wantTotal: 10150,
		},
		{
			name:      "minimum fee floor applies",
			amount:    100,
			role:      models.RoleUser,
			wantFee:   10,
			wantTotal: 110,
		},
		{
			name:      "fee exactly at floor boundary",
			amount:    666.67,
			role:      models.RoleUser,
			wantFee:   10,
			wantTotal: 676.67,
		},
		{
			name:      "agent transfers free",
			amount:    10000,
			role:      models.RoleAgent,
			wantFee:   0,
			wantTotal: 10000,
		},
		{
			name:    "zero amount rejected",
			amount:  0,
			role:    models.RoleUser,
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			amount:  -50,
			role:    models.RoleUser,
			wantErr: true,
		},
		{
			name:    "NaN rejected",
			amount:  math.NaN(),
			role:    models.RoleUser,
			wantErr: true,
		},
		{
			name:    "infinity rejected",
			amount:  math.Inf(1),
			role:    models.RoleUser,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := calc.BankTransfer(tt.amount, tt.role)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFee, quote.Fee)
			assert.Equal(t, tt.wantTotal, quote.Total)
			assert.False(t, math.IsNaN(quote.Total))
			assert.False(t, math.IsInf(quote.Total, 0))
		})
	}
}

func TestBankTransferFeeEqualsMaxFormula(t *testing.T) {
	calc := NewCalculator()

	// fee = max(amount * 0.015, 10) across a spread of amounts
	for _, amount := range []float64{1, 10, 500, 666, 667, 1000, 99999.99} {
		quote, err := calc.BankTransfer(amount, models.RoleUser)
		assert.NoError(t, err)

		expected := amount * 0.015
		if expected < 10 {
			expected = 10
		}
		assert.InDelta(t, expected, quote.Fee, 0.01, "amount %v", amount)
		assert.InDelta(t, amount+quote.Fee, quote.Total, 0.001)
	}
}

func TestBillPaymentAlwaysFree(t *testing.T) {
	calc := NewCalculator()

	for _, amount := range []float64{1, 250.50, 10000} {
		quote, err := calc.BillPayment(amount)
		assert.NoError(t, err)
		assert.Zero(t, quote.Fee)
		assert.Equal(t, amount, quote.Total)
	}

	_, err := calc.BillPayment(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = calc.BillPayment(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSendMoneyFlatFee(t *testing.T) {
	calc := NewCalculator()

	quote, err := calc.SendMoney(500)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, quote.Fee)
	assert.Equal(t, 505.0, quote.Total)

	_, err = calc.SendMoney(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCashOut(t *testing.T) {
	calc := NewCalculator()

	quote, err := calc.CashOut(1000, models.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, 18.5, quote.Fee)
	assert.Equal(t, 1018.5, quote.Total)

	quote, err = calc.CashOut(1000, models.RoleAgent)
	assert.NoError(t, err)
	assert.Zero(t, quote.Fee)
	assert.Equal(t, 1000.0, quote.Total)
}

func TestSafeAverage(t *testing.T) {
	assert.Equal(t, 0.0, SafeAverage(1000, 0))
	assert.Equal(t, 0.0, SafeAverage(0, 0))
	assert.Equal(t, 250.0, SafeAverage(1000, 4))
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0, SuccessRate(0, 0))
	assert.Equal(t, 100, SuccessRate(10, 10))
	assert.Equal(t, 67, SuccessRate(2, 3))
	assert.Equal(t, 33, SuccessRate(1, 3))
}
