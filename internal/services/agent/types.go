package agent

import "time"

// MinRejectionReasonLength is the shortest acceptable rejection reason.
const MinRejectionReasonLength = 10

// actionLockTTL bounds how long an approve/reject decision may hold the
// per-agent lock before it expires on its own.
const actionLockTTL = 30 * time.Second

// RegisterInput holds the business details of an agent application.
type RegisterInput struct {
	BusinessName    string
	BusinessAddress string
}

// StatusChange describes a decided transition for audit responses.
type StatusChange struct {
	AgentID        uint     `json:"agentId"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	AllowedTargets []string `json:"allowedTargets,omitempty"`
}
