package billing

import (
	"context"
	"errors"
	"testing"

	"takapay/internal/models"
	"takapay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBillerRepo struct {
	mock.Mock
}

type MockWalletOps struct {
	mock.Mock
}

func (m *MockBillerRepo) Create(biller *models.Biller) error { return m.Called(biller).Error(0) }

func (m *MockBillerRepo) GetByID(id uint) (*models.Biller, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Biller), args.Error(1)
}

func (m *MockBillerRepo) GetByCode(billerCode string) (*models.Biller, error) {
	args := m.Called(billerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Biller), args.Error(1)
}

func (m *MockBillerRepo) Update(biller *models.Biller) error { return m.Called(biller).Error(0) }

func (m *MockBillerRepo) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *MockBillerRepo) List(status string) ([]models.Biller, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Biller), args.Error(1)
}

func (m *MockBillerRepo) CreditBalance(billerID uint, amount float64) error {
	return m.Called(billerID, amount).Error(0)
}

func (m *MockBillerRepo) CreateBillPayment(payment *models.BillPayment) error {
	return m.Called(payment).Error(0)
}

func (m *MockBillerRepo) UpdateBillPayment(payment *models.BillPayment) error {
	return m.Called(payment).Error(0)
}

func (m *MockBillerRepo) ListBillPaymentsForUser(ctx context.Context, userID uint, limit, offset int) ([]models.BillPayment, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.BillPayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletOps) Debit(ctx context.Context, userID uint, amount float64) error {
	return m.Called(ctx, userID, amount).Error(0)
}

func (m *MockWalletOps) Credit(ctx context.Context, userID uint, amount float64) error {
	return m.Called(ctx, userID, amount).Error(0)
}

type mockTxCreator struct {
	mock.Mock
	repositories.TransactionRepository
}

func (m *mockTxCreator) Create(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *mockTxCreator) Update(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func desco() *models.Biller {
	b := &models.Biller{
		Name:       "DESCO",
		BillerCode: "DESCO-01",
		BillType:   models.BillTypeElectricity,
		Status:     models.BillerStatusActive,
	}
	b.ID = 7
	return b
}

func TestService_UpdateBiller_Immutability(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateBillerInput
		wantErr error
	}{
		{
			name:    "changing the code is rejected",
			input:   UpdateBillerInput{BillerCode: "DESCO-02"},
			wantErr: ErrImmutableField,
		},
		{
			name:    "changing the type is rejected",
			input:   UpdateBillerInput{BillType: models.BillTypeGas},
			wantErr: ErrImmutableField,
		},
		{
			name:  "echoing the current identity is allowed",
			input: UpdateBillerInput{BillerCode: "DESCO-01", BillType: models.BillTypeElectricity, Name: "DESCO Ltd"},
		},
		{
			name:  "omitting identity fields is allowed",
			input: UpdateBillerInput{Name: "DESCO Ltd", ContactEmail: "support@desco.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBillerRepo)
			repo.On("GetByID", uint(7)).Return(desco(), nil)
			if tt.wantErr == nil {
				repo.On("Update", mock.MatchedBy(func(b *models.Biller) bool {
					// Identity survives every update.
					return b.BillerCode == "DESCO-01" && b.BillType == models.BillTypeElectricity
				})).Return(nil)
			}

			s := NewService(repo, new(mockTxCreator), new(MockWalletOps), nil)
			_, err := s.UpdateBiller(context.Background(), 7, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update")
			} else {
				assert.NoError(t, err)
				repo.AssertExpectations(t)
			}
		})
	}
}

func TestService_UpdateBillerStatus(t *testing.T) {
	t.Run("valid change", func(t *testing.T) {
		repo := new(MockBillerRepo)
		repo.On("GetByID", uint(7)).Return(desco(), nil)
		repo.On("Update", mock.Anything).Return(nil)

		s := NewService(repo, new(mockTxCreator), new(MockWalletOps), nil)
		biller, err := s.UpdateBillerStatus(context.Background(), 7, models.BillerStatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, models.BillerStatusSuspended, biller.Status)
	})

	t.Run("same status is a no-op error", func(t *testing.T) {
		repo := new(MockBillerRepo)
		repo.On("GetByID", uint(7)).Return(desco(), nil)

		s := NewService(repo, new(mockTxCreator), new(MockWalletOps), nil)
		_, err := s.UpdateBillerStatus(context.Background(), 7, models.BillerStatusActive)
		assert.ErrorIs(t, err, ErrStatusUnchanged)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		s := NewService(new(MockBillerRepo), new(mockTxCreator), new(MockWalletOps), nil)
		_, err := s.UpdateBillerStatus(context.Background(), 7, "DORMANT")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_CreateBiller(t *testing.T) {
	t.Run("duplicate code rejected", func(t *testing.T) {
		repo := new(MockBillerRepo)
		repo.On("GetByCode", "DESCO-01").Return(desco(), nil)

		s := NewService(repo, new(mockTxCreator), new(MockWalletOps), nil)
		_, err := s.CreateBiller(context.Background(), CreateBillerInput{
			Name:       "Another DESCO",
			BillerCode: "desco-01",
			BillType:   models.BillTypeElectricity,
		})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("unknown bill type rejected", func(t *testing.T) {
		s := NewService(new(MockBillerRepo), new(mockTxCreator), new(MockWalletOps), nil)
		_, err := s.CreateBiller(context.Background(), CreateBillerInput{
			Name:       "X",
			BillerCode: "X-01",
			BillType:   "LAUNDRY",
		})
		assert.ErrorIs(t, err, ErrInvalidBillType)
	})
}

func TestService_PayBill(t *testing.T) {
	t.Run("fee free, total equals amount, receipt issued", func(t *testing.T) {
		repo := new(MockBillerRepo)
		wallets := new(MockWalletOps)
		txs := new(mockTxCreator)

		repo.On("GetByID", uint(7)).Return(desco(), nil)
		wallets.On("Debit", mock.Anything, uint(1), 1200.0).Return(nil)
		repo.On("CreditBalance", uint(7), 1200.0).Return(nil)
		txs.On("Create", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeBillPayment &&
				tx.Fee == 0 && tx.Amount == 1200 &&
				tx.Status == models.TransactionStatusCompleted
		})).Return(nil)
		repo.On("CreateBillPayment", mock.Anything).Return(nil)

		s := NewService(repo, txs, wallets, nil)
		payment, err := s.PayBill(context.Background(), 1, PayBillRequest{
			BillerID:      7,
			AccountNumber: "ACC-123",
			Amount:        1200,
			BillingMonth:  8,
			BillingYear:   2026,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(0), payment.Fee)
		assert.Equal(t, payment.Amount, payment.TotalAmount)
		assert.NotEmpty(t, payment.ReceiptNumber)

		repo.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("ledger write failure reverses the money movement", func(t *testing.T) {
		repo := new(MockBillerRepo)
		wallets := new(MockWalletOps)
		txs := new(mockTxCreator)

		repo.On("GetByID", uint(7)).Return(desco(), nil)
		wallets.On("Debit", mock.Anything, uint(1), 1200.0).Return(nil)
		repo.On("CreditBalance", uint(7), 1200.0).Return(nil)
		txs.On("Create", mock.Anything).Return(errors.New("db down"))
		repo.On("CreditBalance", uint(7), -1200.0).Return(nil)
		wallets.On("Credit", mock.Anything, uint(1), 1200.0).Return(nil)

		s := NewService(repo, txs, wallets, nil)
		_, err := s.PayBill(context.Background(), 1, PayBillRequest{
			BillerID:      7,
			AccountNumber: "ACC-123",
			Amount:        1200,
		})
		require.Error(t, err)

		repo.AssertNotCalled(t, "CreateBillPayment", mock.Anything)
		repo.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("receipt failure fails the transaction and reverses", func(t *testing.T) {
		repo := new(MockBillerRepo)
		wallets := new(MockWalletOps)
		txs := new(mockTxCreator)

		repo.On("GetByID", uint(7)).Return(desco(), nil)
		wallets.On("Debit", mock.Anything, uint(1), 1200.0).Return(nil)
		repo.On("CreditBalance", uint(7), 1200.0).Return(nil)
		txs.On("Create", mock.Anything).Return(nil)
		repo.On("CreateBillPayment", mock.Anything).Return(errors.New("db down"))
		txs.On("Update", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Status == models.TransactionStatusFailed
		})).Return(nil)
		repo.On("CreditBalance", uint(7), -1200.0).Return(nil)
		wallets.On("Credit", mock.Anything, uint(1), 1200.0).Return(nil)

		s := NewService(repo, txs, wallets, nil)
		_, err := s.PayBill(context.Background(), 1, PayBillRequest{
			BillerID:      7,
			AccountNumber: "ACC-123",
			Amount:        1200,
		})
		require.Error(t, err)

		txs.AssertExpectations(t)
		repo.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("suspended biller rejected before any debit", func(t *testing.T) {
		repo := new(MockBillerRepo)
		wallets := new(MockWalletOps)

		suspended := desco()
		suspended.Status = models.BillerStatusSuspended
		repo.On("GetByID", uint(7)).Return(suspended, nil)

		s := NewService(repo, new(mockTxCreator), wallets, nil)
		_, err := s.PayBill(context.Background(), 1, PayBillRequest{
			BillerID:      7,
			AccountNumber: "ACC-123",
			Amount:        100,
		})
		assert.ErrorIs(t, err, ErrBillerUnavailable)
		wallets.AssertNotCalled(t, "Debit")
	})

	t.Run("invalid amount rejected", func(t *testing.T) {
		s := NewService(new(MockBillerRepo), new(mockTxCreator), new(MockWalletOps), nil)
		_, err := s.PayBill(context.Background(), 1, PayBillRequest{
			BillerID:      7,
			AccountNumber: "ACC-123",
			Amount:        0,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
