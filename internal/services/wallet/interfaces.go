package wallet

import (
	"context"

	"takapay/internal/models"
)

// Service defines the main wallet service interface
type Service interface {
	// Core wallet operations
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error)

	// Balance operations
	Credit(ctx context.Context, userID uint, amount float64) error
	Debit(ctx context.Context, userID uint, amount float64) error
	ValidateBalance(ctx context.Context, userID uint, amount float64) error

	// Transfer moves amount from one wallet to another, collecting the fee
	// into the platform account, atomically. It records and returns the
	// completed ledger transaction.
	Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)

	// Status management
	LockWallet(ctx context.Context, walletID uint, reason string) error
	UnlockWallet(ctx context.Context, walletID uint) error
}
