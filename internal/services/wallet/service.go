package wallet

import (
	"context"
	"fmt"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"

	"github.com/google/uuid"
)

// CacheOperator defines the caching operations the wallet service needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}

type service struct {
	repo   repositories.WalletRepository
	cache  CacheOperator
	config Config
}

// NewService creates a new wallet service
func NewService(repo repositories.WalletRepository, cache CacheOperator, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	if config.DefaultCurrency == "" {
		config.DefaultCurrency = DefaultCurrency
	}
	if config.DefaultDailyLimit == 0 {
		config.DefaultDailyLimit = DefaultDailyLimit
	}
	if config.DefaultMonthlyLimit == 0 {
		config.DefaultMonthlyLimit = DefaultMonthlyLimit
	}
	if config.MaxTransactionAmount == 0 {
		config.MaxTransactionAmount = DefaultMaxTransaction
	}
	if config.MinTransactionAmount == 0 {
		config.MinTransactionAmount = DefaultMinTransaction
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}

	return &service{
		repo:   repo,
		cache:  cache,
		config: config,
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if cached, err := s.cache.GetWallet(ctx, userID); err == nil && cached != nil {
		sanitized := cached.Sanitize()
		return &sanitized, nil
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, wallet)
	sanitized := wallet.Sanitize()
	return &sanitized, nil
}

func (s *service) CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error) {
	if currency == "" {
		currency = s.config.DefaultCurrency
	}

	wallet := &models.Wallet{
		UserID:       userID,
		Currency:     currency,
		Status:       models.WalletStatusActive,
		DailyLimit:   s.config.DefaultDailyLimit,
		MonthlyLimit: s.config.DefaultMonthlyLimit,
	}

	if err := s.repo.Create(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) Credit(ctx context.Context, userID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > s.config.MaxTransactionAmount {
		return fmt.Errorf("amount exceeds maximum limit of %v", s.config.MaxTransactionAmount)
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserID(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletLocked
		}

		wallet.Balance += amount
		wallet.AvailableBalance += amount
		return tx.Update(wallet)
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateWallet(ctx, userID)
	return nil
}

func (s *service) Debit(ctx context.Context, userID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserID(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletLocked
		}

		resetSpentWindows(wallet, time.Now())
		if err := checkSpend(wallet, amount); err != nil {
			return err
		}

		wallet.Balance -= amount
		wallet.AvailableBalance -= amount
		wallet.DailySpent += amount
		wallet.MonthlySpent += amount
		return tx.Update(wallet)
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateWallet(ctx, userID)
	return nil
}

func (s *service) ValidateBalance(ctx context.Context, userID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return err
	}

	if wallet.AvailableBalance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if req.Amount <= 0 || req.Fee < 0 {
		return nil, ErrInvalidAmount
	}
	if req.FromUserID == req.ToUserID {
		return nil, ErrSelfTransfer
	}
	if req.Amount > s.config.MaxTransactionAmount {
		return nil, fmt.Errorf("amount exceeds maximum limit of %v", s.config.MaxTransactionAmount)
	}

	total := req.Amount + req.Fee
	now := time.Now()

	transferTx := &models.Transaction{
		TransactionID: fmt.Sprintf("TXN-%s", uuid.NewString()),
		Type:          req.Type,
		SenderID:      req.FromUserID,
		ReceiverID:    req.ToUserID,
		Amount:        req.Amount,
		Fee:           req.Fee,
		Status:        models.TransactionStatusCompleted,
		Description:   req.Description,
		Reference:     req.Reference,
		Currency:      s.config.DefaultCurrency,
		CompletedAt:   &now,
	}
	if req.Metadata != nil {
		transferTx.Metadata = models.NewJSON(req.Metadata)
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		source, err := tx.GetByUserID(req.FromUserID)
		if err != nil {
			return fmt.Errorf("source wallet: %w", err)
		}
		dest, err := tx.GetByUserID(req.ToUserID)
		if err != nil {
			return fmt.Errorf("destination wallet: %w", err)
		}

		if source.Status != models.WalletStatusActive {
			return ErrWalletLocked
		}

		resetSpentWindows(source, now)
		if err := checkSpend(source, total); err != nil {
			return err
		}

		source.Balance -= total
		source.AvailableBalance -= total
		source.DailySpent += total
		source.MonthlySpent += total
		if err := tx.Update(source); err != nil {
			return err
		}

		dest.Balance += req.Amount
		dest.AvailableBalance += req.Amount
		if err := tx.Update(dest); err != nil {
			return err
		}

		// Collect the fee into the platform account.
		if req.Fee > 0 && s.config.PlatformUserID != 0 {
			platform, err := tx.GetByUserID(s.config.PlatformUserID)
			if err != nil {
				return fmt.Errorf("platform wallet: %w", err)
			}
			platform.Balance += req.Fee
			platform.AvailableBalance += req.Fee
			if err := tx.Update(platform); err != nil {
				return err
			}
		}

		return tx.CreateTransaction(transferTx)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, req.FromUserID)
	s.cache.InvalidateWallet(ctx, req.ToUserID)
	if req.Fee > 0 && s.config.PlatformUserID != 0 {
		s.cache.InvalidateWallet(ctx, s.config.PlatformUserID)
	}

	return transferTx, nil
}

func (s *service) LockWallet(ctx context.Context, walletID uint, reason string) error {
	wallet, err := s.repo.GetByID(walletID)
	if err != nil {
		return fmt.Errorf("wallet not found: %w", err)
	}

	if err := s.repo.UpdateStatus(walletID, models.WalletStatusLocked, reason); err != nil {
		return fmt.Errorf("failed to lock wallet: %w", err)
	}

	s.cache.InvalidateWallet(ctx, wallet.UserID)
	return nil
}

func (s *service) UnlockWallet(ctx context.Context, walletID uint) error {
	wallet, err := s.repo.GetByID(walletID)
	if err != nil {
		return fmt.Errorf("wallet not found: %w", err)
	}

	if err := s.repo.UpdateStatus(walletID, models.WalletStatusActive, ""); err != nil {
		return fmt.Errorf("failed to unlock wallet: %w", err)
	}

	s.cache.InvalidateWallet(ctx, wallet.UserID)
	return nil
}

// checkSpend verifies balance and the daily/monthly spend limits for a debit
// of the given total. A limit at or below zero (models.LimitUnlimited) is
// uncapped.
func checkSpend(w *models.Wallet, total float64) error {
	if w.AvailableBalance < total {
		return ErrInsufficientBalance
	}
	if w.DailyLimit > 0 && w.DailySpent+total > w.DailyLimit {
		return ErrDailyLimitExceeded
	}
	if w.MonthlyLimit > 0 && w.MonthlySpent+total > w.MonthlyLimit {
		return ErrMonthlyLimitExceeded
	}
	return nil
}

// resetSpentWindows zeroes the running spend counters when the wallet was
// last touched in an earlier day or month.
func resetSpentWindows(w *models.Wallet, now time.Time) {
	last := w.UpdatedAt
	if last.IsZero() {
		return
	}
	ny, nm, nd := now.Date()
	ly, lm, ld := last.Date()
	if ly != ny || lm != nm || ld != nd {
		w.DailySpent = 0
	}
	if ly != ny || lm != nm {
		w.MonthlySpent = 0
	}
}
