package wallet

import (
	"context"
	"testing"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletRepo struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) Update(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) CreateTransaction(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockWalletRepo) GetDailyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error {
	args := m.Called(ctx, userID, start, end, total)
	return args.Error(0)
}

func (m *MockWalletRepo) GetMonthlyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error {
	args := m.Called(ctx, userID, start, end, total)
	return args.Error(0)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockWalletRepo) UpdateStatus(walletID uint, status, reason string) error {
	args := m.Called(walletID, status, reason)
	return args.Error(0)
}

func (m *MockCache) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockCache) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockCache) InvalidateWallet(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestService(repo *MockWalletRepo, cache *MockCache) Service {
	return NewService(repo, cache, Config{PlatformUserID: 99})
}

func TestService_GetWallet(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)
		cached := &models.Wallet{UserID: 1, Balance: 250, AvailableBalance: 250}
		cache.On("GetWallet", mock.Anything, uint(1)).Return(cached, nil)

		s := newTestService(repo, cache)
		wallet, err := s.GetWallet(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, float64(250), wallet.Balance)

		repo.AssertNotCalled(t, "GetByUserID")
	})

	t.Run("cache miss falls through to repo", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)
		stored := &models.Wallet{UserID: 1, Balance: 100, AvailableBalance: 100}
		cache.On("GetWallet", mock.Anything, uint(1)).Return(nil, assert.AnError)
		cache.On("CacheWallet", mock.Anything, stored).Return(nil)
		repo.On("GetByUserID", uint(1)).Return(stored, nil)

		s := newTestService(repo, cache)
		wallet, err := s.GetWallet(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, float64(100), wallet.Balance)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)
		cache.On("GetWallet", mock.Anything, uint(7)).Return(nil, assert.AnError)
		repo.On("GetByUserID", uint(7)).Return(nil, repositories.ErrWalletNotFound)

		s := newTestService(repo, cache)
		_, err := s.GetWallet(context.Background(), 7)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("corrupt balances are sanitized for display", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)
		cached := &models.Wallet{UserID: 1, Balance: -50, AvailableBalance: 30}
		cache.On("GetWallet", mock.Anything, uint(1)).Return(cached, nil)

		s := newTestService(repo, cache)
		wallet, err := s.GetWallet(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, float64(0), wallet.Balance)
		assert.Equal(t, float64(0), wallet.AvailableBalance)
	})
}

func TestService_Credit(t *testing.T) {
	tests := []struct {
		name      string
		userID    uint
		amount    float64
		setupMock func(*MockWalletRepo, *MockCache)
		wantErr   error
	}{
		{
			name:   "successful credit",
			userID: 1,
			amount: 100.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				wallet := &models.Wallet{UserID: 1, Balance: 50, AvailableBalance: 50, Status: models.WalletStatusActive}
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(wallet, nil)
				repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
					return w.Balance == 150 && w.AvailableBalance == 150
				})).Return(nil)
				cache.On("InvalidateWallet", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name:    "invalid amount",
			userID:  1,
			amount:  -100.0,
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "locked wallet",
			userID: 1,
			amount: 100.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				wallet := &models.Wallet{UserID: 1, Status: models.WalletStatusLocked}
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(wallet, nil)
			},
			wantErr: ErrWalletLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWalletRepo)
			cache := new(MockCache)
			if tt.setupMock != nil {
				tt.setupMock(repo, cache)
			}

			s := newTestService(repo, cache)
			err := s.Credit(context.Background(), tt.userID, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_Debit(t *testing.T) {
	activeWallet := func(balance, dailySpent float64) *models.Wallet {
		return &models.Wallet{
			UserID:           1,
			Balance:          balance,
			AvailableBalance: balance,
			DailyLimit:       25000,
			DailySpent:       dailySpent,
			MonthlyLimit:     200000,
			Status:           models.WalletStatusActive,
			UpdatedAt:        time.Now(),
		}
	}

	tests := []struct {
		name      string
		amount    float64
		setupMock func(*MockWalletRepo, *MockCache)
		wantErr   error
	}{
		{
			name:   "successful debit",
			amount: 200.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(activeWallet(500, 0), nil)
				repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
					return w.Balance == 300 && w.DailySpent == 200
				})).Return(nil)
				cache.On("InvalidateWallet", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name:   "insufficient balance",
			amount: 600.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(activeWallet(500, 0), nil)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:   "daily limit exceeded",
			amount: 1000.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(activeWallet(50000, 24500), nil)
			},
			wantErr: ErrDailyLimitExceeded,
		},
		{
			// The operator wallet is seeded with LimitUnlimited so fee
			// sweeps and commission payouts never hit the consumer caps.
			name:   "unlimited sentinel skips the spend caps",
			amount: 60000.0,
			setupMock: func(repo *MockWalletRepo, cache *MockCache) {
				w := activeWallet(100000, 30000)
				w.DailyLimit = models.LimitUnlimited
				w.MonthlyLimit = models.LimitUnlimited
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(w, nil)
				repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
					return w.Balance == 40000 && w.DailyLimit == models.LimitUnlimited
				})).Return(nil)
				cache.On("InvalidateWallet", mock.Anything, uint(1)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWalletRepo)
			cache := new(MockCache)
			if tt.setupMock != nil {
				tt.setupMock(repo, cache)
			}

			s := newTestService(repo, cache)
			err := s.Debit(context.Background(), 1, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Transfer(t *testing.T) {
	newWallet := func(userID uint, balance float64) *models.Wallet {
		return &models.Wallet{
			UserID:           userID,
			Balance:          balance,
			AvailableBalance: balance,
			DailyLimit:       25000,
			MonthlyLimit:     200000,
			Status:           models.WalletStatusActive,
			UpdatedAt:        time.Now(),
		}
	}

	t.Run("successful transfer collects fee into platform account", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)

		source := newWallet(1, 1000)
		dest := newWallet(2, 100)
		platform := newWallet(99, 0)

		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByUserID", uint(1)).Return(source, nil)
		repo.On("GetByUserID", uint(2)).Return(dest, nil)
		repo.On("GetByUserID", uint(99)).Return(platform, nil)
		repo.On("Update", mock.Anything).Return(nil)
		repo.On("CreateTransaction", mock.Anything).Return(nil)
		cache.On("InvalidateWallet", mock.Anything, mock.Anything).Return(nil)

		s := newTestService(repo, cache)
		tx, err := s.Transfer(context.Background(), TransferRequest{
			FromUserID: 1,
			ToUserID:   2,
			Amount:     500,
			Fee:        5,
			Type:       models.TransactionTypeSendMoney,
		})
		require.NoError(t, err)

		// Sender pays amount plus fee, receiver gets the amount, the
		// platform keeps the fee. Nothing is created or destroyed.
		assert.Equal(t, float64(495), source.Balance)
		assert.Equal(t, float64(600), dest.Balance)
		assert.Equal(t, float64(5), platform.Balance)

		assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
		assert.Equal(t, models.TransactionTypeSendMoney, tx.Type)
		assert.Equal(t, float64(500), tx.Amount)
		assert.Equal(t, float64(5), tx.Fee)
		assert.NotEmpty(t, tx.TransactionID)
		assert.NotNil(t, tx.CompletedAt)

		repo.AssertExpectations(t)
	})

	t.Run("self transfer rejected", func(t *testing.T) {
		s := newTestService(new(MockWalletRepo), new(MockCache))
		_, err := s.Transfer(context.Background(), TransferRequest{
			FromUserID: 1,
			ToUserID:   1,
			Amount:     100,
			Type:       models.TransactionTypeSendMoney,
		})
		assert.ErrorIs(t, err, ErrSelfTransfer)
	})

	t.Run("insufficient balance rolls back", func(t *testing.T) {
		repo := new(MockWalletRepo)
		cache := new(MockCache)

		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByUserID", uint(1)).Return(newWallet(1, 50), nil)
		repo.On("GetByUserID", uint(2)).Return(newWallet(2, 0), nil)

		s := newTestService(repo, cache)
		_, err := s.Transfer(context.Background(), TransferRequest{
			FromUserID: 1,
			ToUserID:   2,
			Amount:     500,
			Fee:        5,
			Type:       models.TransactionTypeSendMoney,
		})
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		repo.AssertNotCalled(t, "CreateTransaction")
	})
}

func TestResetSpentWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("same day keeps counters", func(t *testing.T) {
		w := &models.Wallet{DailySpent: 500, MonthlySpent: 5000, UpdatedAt: now.Add(-2 * time.Hour)}
		resetSpentWindows(w, now)
		assert.Equal(t, float64(500), w.DailySpent)
		assert.Equal(t, float64(5000), w.MonthlySpent)
	})

	t.Run("new day resets daily only", func(t *testing.T) {
		w := &models.Wallet{DailySpent: 500, MonthlySpent: 5000, UpdatedAt: now.AddDate(0, 0, -1)}
		resetSpentWindows(w, now)
		assert.Equal(t, float64(0), w.DailySpent)
		assert.Equal(t, float64(5000), w.MonthlySpent)
	})

	t.Run("new month resets both", func(t *testing.T) {
		w := &models.Wallet{DailySpent: 500, MonthlySpent: 5000, UpdatedAt: now.AddDate(0, -1, 0)}
		resetSpentWindows(w, now)
		assert.Equal(t, float64(0), w.DailySpent)
		assert.Equal(t, float64(0), w.MonthlySpent)
	})
}
