package wallet

import "time"

// TransferRequest represents an atomic wallet-to-wallet move.
type TransferRequest struct {
	FromUserID  uint
	ToUserID    uint
	Amount      float64
	Fee         float64
	Type        string // transaction type recorded in the ledger
	Description string
	Reference   string
	Metadata    map[string]interface{}
}

// Config holds configuration for wallet operations.
type Config struct {
	DefaultCurrency      string
	DefaultDailyLimit    float64
	DefaultMonthlyLimit  float64
	MaxTransactionAmount float64
	MinTransactionAmount float64
	PlatformUserID       uint // operator account collecting fees
	ProcessingTimeout    time.Duration
}

type contextKey string

// UserRoleContextKey carries the caller's role for limit selection.
const UserRoleContextKey contextKey = "userRole"
