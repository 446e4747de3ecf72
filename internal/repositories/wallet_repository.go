package repositories

import (
	"context"
	"time"

	"takapay/internal/models"
)

// WalletRepository defines the interface for wallet-related database operations
type WalletRepository interface {
	// Core wallet operations
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// Ledger operations
	CreateTransaction(tx *models.Transaction) error
	GetDailyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error
	GetMonthlyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error

	// Batch operations
	ExecuteInTransaction(fn func(WalletRepository) error) error

	// Status operations
	UpdateStatus(walletID uint, status, reason string) error
}
