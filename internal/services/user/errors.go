package user

import "errors"

// Service errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIllegalTransition = errors.New("illegal account status transition")
	ErrUnknownStatus     = errors.New("unknown account status")
	ErrCannotDeleteSelf  = errors.New("admins cannot delete their own account")
	ErrNotConsumer       = errors.New("user is not a consumer account")
)
