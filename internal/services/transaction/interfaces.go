package transaction

import (
	"context"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/wallet"
	"takapay/internal/utils/pagination"
)

// Service defines transaction processing and history operations.
type Service interface {
	// Money movement
	SendMoney(ctx context.Context, senderID uint, req SendMoneyRequest) (*models.Transaction, error)
	CashIn(ctx context.Context, agentUserID uint, req CashInRequest) (*models.Transaction, error)
	CashOut(ctx context.Context, customerID uint, req CashOutRequest) (*models.Transaction, error)

	// History returns one page of the user's ledger, newest first, annotated
	// with the credited flag and display serials. It updates p.Total.
	History(ctx context.Context, userID uint, filter repositories.TransactionListFilter, p *pagination.Pagination) ([]models.TransactionView, error)

	// Details returns a single transaction by its external ID. When viewerID
	// is non-zero the viewer must be a party to the transaction.
	Details(ctx context.Context, transactionID string, viewerID uint) (*models.TransactionView, error)
}

// WalletOperator is the slice of the wallet service this package needs.
type WalletOperator interface {
	Transfer(ctx context.Context, req wallet.TransferRequest) (*models.Transaction, error)
	ValidateBalance(ctx context.Context, userID uint, amount float64) error
}
