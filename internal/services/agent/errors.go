package agent

import "errors"

// Service errors
var (
	ErrAgentNotFound     = errors.New("agent not found")
	ErrReasonTooShort    = errors.New("rejection reason must be at least 10 characters")
	ErrActionInFlight    = errors.New("another decision for this agent is already in progress")
	ErrIllegalTransition = errors.New("illegal agent status transition")
	ErrAlreadyDecided    = errors.New("agent application has already been decided")
)
