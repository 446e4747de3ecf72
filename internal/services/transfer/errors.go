package transfer

import "errors"

// Service errors
var (
	ErrTransferNotFound  = errors.New("bank transfer not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingBankDetail = errors.New("bank name and account number are required")
	ErrNotPending        = errors.New("bank transfer is already settled")
)
