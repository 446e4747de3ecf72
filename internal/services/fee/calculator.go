// Package fee computes transfer fees and totals for preview and for the
// authoritative charge itself, plus the guarded aggregate helpers used by
// analytics dashboards.
package fee

import (
	"errors"
	"math"

	"takapay/internal/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Bank-transfer fee schedule: consumers pay 1.5% with a ৳10 floor, agents
// transfer free of charge.
var (
	bankTransferRate    = decimal.NewFromFloat(0.015)
	bankTransferMinimum = decimal.NewFromInt(10)
)

// SendMoneyFee is the flat personal transfer fee in BDT.
const SendMoneyFee = 5.0

// CashOutRate is the consumer cash-out percentage; agents cash out free.
const CashOutRate = 0.0185

// Quote is a computed fee preview.
type Quote struct {
	Amount float64 `json:"amount"`
	Fee    float64 `json:"fee"`
	Total  float64 `json:"total"`
}

// Calculator computes fees and totals by actor role.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

// BankTransfer quotes a bank transfer: max(amount*1.5%, ৳10) for consumers,
// zero for agents. Total is always amount + fee.
func (c *Calculator) BankTransfer(amount float64, role string) (Quote, error) {
	if !validAmount(amount) {
		return Quote{}, ErrInvalidAmount
	}

	amt := decimal.NewFromFloat(amount)
	fee := decimal.Zero
	if role != models.RoleAgent {
		fee = amt.Mul(bankTransferRate)
		if fee.LessThan(bankTransferMinimum) {
			fee = bankTransferMinimum
		}
		fee = fee.Round(2)
	}

	feeF, _ := fee.Float64()
	totalF, _ := amt.Add(fee).Round(2).Float64()
	return Quote{Amount: amount, Fee: feeF, Total: totalF}, nil
}

// BillPayment quotes a bill payment: always fee-free, total equals amount.
func (c *Calculator) BillPayment(amount float64) (Quote, error) {
	if !validAmount(amount) {
		return Quote{}, ErrInvalidAmount
	}
	return Quote{Amount: amount, Fee: 0, Total: amount}, nil
}

// SendMoney quotes a personal transfer with the flat ৳5 fee.
func (c *Calculator) SendMoney(amount float64) (Quote, error) {
	if !validAmount(amount) {
		return Quote{}, ErrInvalidAmount
	}

	total, _ := decimal.NewFromFloat(amount).
		Add(decimal.NewFromFloat(SendMoneyFee)).
		Round(2).Float64()
	return Quote{Amount: amount, Fee: SendMoneyFee, Total: total}, nil
}

// CashOut quotes an agent-assisted cash-out: 1.85% for consumers, zero for
// agents withdrawing their own float.
func (c *Calculator) CashOut(amount float64, role string) (Quote, error) {
	if !validAmount(amount) {
		return Quote{}, ErrInvalidAmount
	}

	amt := decimal.NewFromFloat(amount)
	fee := decimal.Zero
	if role != models.RoleAgent {
		fee = amt.Mul(decimal.NewFromFloat(CashOutRate)).Round(2)
	}

	feeF, _ := fee.Float64()
	totalF, _ := amt.Add(fee).Round(2).Float64()
	return Quote{Amount: amount, Fee: feeF, Total: totalF}, nil
}

// SafeAverage divides total by count, returning 0 for an empty set instead of
// NaN or Inf.
func SafeAverage(total float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	avg := total / float64(count)
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0
	}
	return avg
}

// SuccessRate returns round(completed/total*100), 0 when total is zero.
func SuccessRate(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
