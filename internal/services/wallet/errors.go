package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrDailyLimitExceeded   = errors.New("daily limit exceeded")
	ErrMonthlyLimitExceeded = errors.New("monthly limit exceeded")
	ErrWalletLocked         = errors.New("wallet is locked")
	ErrSelfTransfer         = errors.New("cannot transfer to self")
	ErrTransactionFailed    = errors.New("transaction failed")
)
