package billing

import "errors"

// Service errors
var (
	ErrBillerNotFound    = errors.New("biller not found")
	ErrDuplicateCode     = errors.New("biller code already exists")
	ErrInvalidBillType   = errors.New("unknown bill type")
	ErrInvalidStatus     = errors.New("unknown biller status")
	ErrImmutableField    = errors.New("biller code and bill type cannot be changed")
	ErrStatusUnchanged   = errors.New("biller already has this status")
	ErrBillerUnavailable = errors.New("biller is not accepting payments")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingAccount    = errors.New("account number is required")
)
