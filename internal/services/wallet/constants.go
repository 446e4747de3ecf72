package wallet

import "time"

// Default configuration values
const (
	DefaultCurrency       = "BDT"
	DefaultDailyLimit     = 25000.0
	DefaultMonthlyLimit   = 200000.0
	DefaultMaxTransaction = 50000.0
	DefaultMinTransaction = 1.0
	DefaultTimeout        = 30 * time.Second
)
