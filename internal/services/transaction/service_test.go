package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/wallet"
	"takapay/internal/utils/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTxRepo struct {
	mock.Mock
}

type MockUserRepo struct {
	mock.Mock
}

type MockAgentRepo struct {
	mock.Mock
}

type MockWalletOps struct {
	mock.Mock
}

func (m *MockTxRepo) Create(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockTxRepo) GetByID(id uint) (*models.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTxRepo) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTxRepo) Update(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockTxRepo) ListForUser(ctx context.Context, userID uint, filter repositories.TransactionListFilter, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTxRepo) GetStats(ctx context.Context, userID uint) (*repositories.TransactionStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.TransactionStats), args.Error(1)
}

func (m *MockTxRepo) CountByType(ctx context.Context, userID uint, start, end time.Time) (map[string]int64, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockTxRepo) SumAmountByType(ctx context.Context, partyID uint, txType string, credited bool) (float64, error) {
	args := m.Called(ctx, partyID, txType, credited)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTxRepo) SumFeesTo(ctx context.Context, receiverID uint) (float64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTxRepo) SumCollectedFees(ctx context.Context, platformID uint) (float64, error) {
	args := m.Called(ctx, platformID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTxRepo) ReconcileBalance(ctx context.Context, partyID uint) (float64, error) {
	args := m.Called(ctx, partyID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTxRepo) LastTransactionTime(ctx context.Context, partyID uint) (*time.Time, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockUserRepo) Create(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) UpdateStatus(id uint, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *MockUserRepo) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepo) ListFiltered(filter repositories.UserListFilter, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockAgentRepo) Create(agent *models.Agent) error { return m.Called(agent).Error(0) }

func (m *MockAgentRepo) GetByID(id uint) (*models.Agent, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepo) GetByUserID(userID uint) (*models.Agent, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepo) GetByCode(agentCode string) (*models.Agent, error) {
	args := m.Called(agentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepo) Update(agent *models.Agent) error { return m.Called(agent).Error(0) }

func (m *MockAgentRepo) ListPaginated(status string, limit, offset int) ([]models.Agent, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Agent), args.Get(1).(int64), args.Error(2)
}

func (m *MockAgentRepo) IncrementCommission(agentID uint, amount float64) error {
	return m.Called(agentID, amount).Error(0)
}

func (m *MockWalletOps) Transfer(ctx context.Context, req wallet.TransferRequest) (*models.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockWalletOps) ValidateBalance(ctx context.Context, userID uint, amount float64) error {
	return m.Called(ctx, userID, amount).Error(0)
}

func newTestDeps() (*MockTxRepo, *MockUserRepo, *MockAgentRepo, *MockWalletOps) {
	return new(MockTxRepo), new(MockUserRepo), new(MockAgentRepo), new(MockWalletOps)
}

func TestService_SendMoney(t *testing.T) {
	t.Run("flat fee is charged and transfer recorded", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		receiver := &models.User{Status: models.UserStatusActive}
		receiver.ID = 2
		users.On("GetByPhone", "+8801711000000").Return(receiver, nil)
		wallets.On("Transfer", mock.Anything, mock.MatchedBy(func(req wallet.TransferRequest) bool {
			return req.FromUserID == 1 && req.ToUserID == 2 &&
				req.Amount == 500 && req.Fee == 5 &&
				req.Type == models.TransactionTypeSendMoney
		})).Return(&models.Transaction{TransactionID: "TXN-1"}, nil)

		s := NewService(repo, users, agents, wallets, nil, Config{PlatformUserID: 99})
		tx, err := s.SendMoney(context.Background(), 1, SendMoneyRequest{
			ReceiverPhone: "+8801711000000",
			Amount:        500,
		})
		require.NoError(t, err)
		assert.Equal(t, "TXN-1", tx.TransactionID)
		wallets.AssertExpectations(t)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		users.On("GetByPhone", "+8801700000000").Return(nil, repositories.ErrUserNotFound)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.SendMoney(context.Background(), 1, SendMoneyRequest{
			ReceiverPhone: "+8801700000000",
			Amount:        100,
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("suspended receiver rejected", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		receiver := &models.User{Status: models.UserStatusSuspended}
		receiver.ID = 2
		users.On("GetByPhone", "+8801700000001").Return(receiver, nil)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.SendMoney(context.Background(), 1, SendMoneyRequest{
			ReceiverPhone: "+8801700000001",
			Amount:        100,
		})
		assert.ErrorIs(t, err, ErrRecipientUnavailable)
		wallets.AssertNotCalled(t, "Transfer")
	})

	t.Run("invalid amount", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.SendMoney(context.Background(), 1, SendMoneyRequest{Amount: -1})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestService_CashOut(t *testing.T) {
	t.Run("consumer pays percentage fee, agent earns commission", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()

		agent := &models.Agent{UserID: 5, AgentCode: "AG-1001", Status: models.AgentStatusActive}
		agent.ID = 3
		agents.On("GetByCode", "AG-1001").Return(agent, nil)

		customer := &models.User{Role: models.RoleUser, Status: models.UserStatusActive}
		customer.ID = 1
		users.On("GetByID", uint(1)).Return(customer, nil)

		// Withdrawal leg: 1000 at 1.85% consumer fee.
		wallets.On("Transfer", mock.Anything, mock.MatchedBy(func(req wallet.TransferRequest) bool {
			return req.Type == models.TransactionTypeCashOut &&
				req.FromUserID == 1 && req.ToUserID == 5 &&
				req.Amount == 1000 && req.Fee == 18.5
		})).Return(&models.Transaction{TransactionID: "TXN-OUT"}, nil)

		// Commission leg from the platform account.
		wallets.On("Transfer", mock.Anything, mock.MatchedBy(func(req wallet.TransferRequest) bool {
			return req.Type == models.TransactionTypeCommission &&
				req.FromUserID == 99 && req.ToUserID == 5 &&
				req.Reference == "TXN-OUT"
		})).Return(&models.Transaction{TransactionID: "TXN-COM"}, nil)
		agents.On("IncrementCommission", uint(3), 1000*CommissionRate).Return(nil)

		s := NewService(repo, users, agents, wallets, nil, Config{PlatformUserID: 99})
		tx, err := s.CashOut(context.Background(), 1, CashOutRequest{AgentCode: "AG-1001", Amount: 1000})
		require.NoError(t, err)
		assert.Equal(t, "TXN-OUT", tx.TransactionID)

		wallets.AssertExpectations(t)
		agents.AssertExpectations(t)
	})

	t.Run("commission failure never fails the withdrawal", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()

		agent := &models.Agent{UserID: 5, AgentCode: "AG-1001", Status: models.AgentStatusActive}
		agent.ID = 3
		agents.On("GetByCode", "AG-1001").Return(agent, nil)

		customer := &models.User{Role: models.RoleUser, Status: models.UserStatusActive}
		customer.ID = 1
		users.On("GetByID", uint(1)).Return(customer, nil)

		wallets.On("Transfer", mock.Anything, mock.MatchedBy(func(req wallet.TransferRequest) bool {
			return req.Type == models.TransactionTypeCashOut
		})).Return(&models.Transaction{TransactionID: "TXN-OUT"}, nil)
		wallets.On("Transfer", mock.Anything, mock.MatchedBy(func(req wallet.TransferRequest) bool {
			return req.Type == models.TransactionTypeCommission
		})).Return(nil, errors.New("platform wallet locked"))

		s := NewService(repo, users, agents, wallets, nil, Config{PlatformUserID: 99})
		tx, err := s.CashOut(context.Background(), 1, CashOutRequest{AgentCode: "AG-1001", Amount: 1000})
		require.NoError(t, err)
		assert.Equal(t, "TXN-OUT", tx.TransactionID)

		// The tally only moves when the payout actually landed.
		agents.AssertNotCalled(t, "IncrementCommission", mock.Anything, mock.Anything)
	})

	t.Run("pending agent rejected", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		agent := &models.Agent{UserID: 5, Status: models.AgentStatusPending}
		agents.On("GetByCode", "AG-2002").Return(agent, nil)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.CashOut(context.Background(), 1, CashOutRequest{AgentCode: "AG-2002", Amount: 100})
		assert.ErrorIs(t, err, ErrAgentUnavailable)
		wallets.AssertNotCalled(t, "Transfer")
	})
}

func TestService_History(t *testing.T) {
	t.Run("annotates credited flag and serials", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()

		txs := []models.Transaction{
			{SenderID: 2, ReceiverID: 1, Type: models.TransactionTypeSendMoney},
			{SenderID: 1, ReceiverID: 3, Type: models.TransactionTypeSendMoney},
		}
		repo.On("ListForUser", mock.Anything, uint(1), repositories.TransactionListFilter{}, 10, 10).
			Return(txs, int64(25), nil)

		p := pagination.New(2, 10)
		s := NewService(repo, users, agents, wallets, nil, Config{})
		views, err := s.History(context.Background(), 1, repositories.TransactionListFilter{}, &p)
		require.NoError(t, err)
		require.Len(t, views, 2)

		assert.True(t, views[0].IsCredited)
		assert.False(t, views[1].IsCredited)
		// Serials continue across pages: page 2 of 10 starts at 11.
		assert.Equal(t, 11, views[0].Serial)
		assert.Equal(t, 12, views[1].Serial)
		assert.Equal(t, int64(25), p.Total)
	})

	t.Run("unknown type filter rejected", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		p := pagination.New(1, 10)
		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.History(context.Background(), 1, repositories.TransactionListFilter{Type: "LOTTERY"}, &p)
		assert.ErrorIs(t, err, ErrInvalidFilter)
		repo.AssertNotCalled(t, "ListForUser")
	})

	t.Run("unknown status filter rejected", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		p := pagination.New(1, 10)
		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.History(context.Background(), 1, repositories.TransactionListFilter{Status: "SETTLED"}, &p)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})
}

func TestService_Details(t *testing.T) {
	stored := &models.Transaction{TransactionID: "TXN-9", SenderID: 1, ReceiverID: 2}

	t.Run("participant can view", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		repo.On("GetByTransactionID", "TXN-9").Return(stored, nil)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		view, err := s.Details(context.Background(), "TXN-9", 2)
		require.NoError(t, err)
		assert.True(t, view.IsCredited)
	})

	t.Run("stranger cannot view", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		repo.On("GetByTransactionID", "TXN-9").Return(stored, nil)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.Details(context.Background(), "TXN-9", 42)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("not found", func(t *testing.T) {
		repo, users, agents, wallets := newTestDeps()
		repo.On("GetByTransactionID", "TXN-MISSING").Return(nil, repositories.ErrTransactionNotFound)

		s := NewService(repo, users, agents, wallets, nil, Config{})
		_, err := s.Details(context.Background(), "TXN-MISSING", 0)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}
