package repositories

import (
	"context"
	"time"

	"takapay/internal/models"
)

// TransactionListFilter narrows a transaction listing. Empty fields are ignored.
type TransactionListFilter struct {
	Type   string
	Status string
}

// TransactionStats are aggregate ledger figures for analytics dashboards.
type TransactionStats struct {
	TotalTransactions int64
	CompletedCount    int64
	PendingCount      int64
	FailedCount       int64
	TotalVolume       float64
	TotalFees         float64
}

// TransactionRepository defines the interface for ledger queries.
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetByTransactionID(transactionID string) (*models.Transaction, error)
	Update(tx *models.Transaction) error

	// ListForUser returns one page of transactions where the user is either
	// party, newest first, plus the total matching count.
	ListForUser(ctx context.Context, userID uint, filter TransactionListFilter, limit, offset int) ([]models.Transaction, int64, error)

	// Aggregations
	GetStats(ctx context.Context, userID uint) (*TransactionStats, error)
	CountByType(ctx context.Context, userID uint, start, end time.Time) (map[string]int64, error)
	SumAmountByType(ctx context.Context, partyID uint, txType string, credited bool) (float64, error)
	SumFeesTo(ctx context.Context, receiverID uint) (float64, error)
	LastTransactionTime(ctx context.Context, partyID uint) (*time.Time, error)

	// SumCollectedFees totals the fees owed to the platform account: every
	// fee on a non-failed row the platform did not itself send.
	SumCollectedFees(ctx context.Context, platformID uint) (float64, error)

	// ReconcileBalance recomputes a party's balance purely from the ledger:
	// completed credits plus collected fees minus completed debits.
	ReconcileBalance(ctx context.Context, partyID uint) (float64, error)
}
