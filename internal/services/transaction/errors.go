package transaction

import "errors"

// Service errors
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidFilter        = errors.New("invalid transaction filter")
	ErrNotParticipant       = errors.New("transaction does not involve this user")
	ErrRecipientUnavailable = errors.New("recipient account is not active")
	ErrAgentUnavailable     = errors.New("agent is not active")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvalidStatusMove    = errors.New("illegal transaction status transition")
	ErrInvalidAmount        = errors.New("invalid amount")
)
