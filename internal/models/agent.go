package models

import (
	"time"

	"gorm.io/gorm"
)

// Agent statuses
const (
	AgentStatusPending   = "PENDING"
	AgentStatusActive    = "ACTIVE"
	AgentStatusSuspended = "SUSPENDED"
	AgentStatusRejected  = "REJECTED"
)

// Agent is a business-role actor who cashes consumers in and out and collects
// commission. Agents register PENDING and require admin approval.
type Agent struct {
	gorm.Model
	UserID                uint    `gorm:"uniqueIndex;not null" json:"userId"`
	User                  *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AgentCode             string  `gorm:"uniqueIndex;size:16;not null" json:"agentCode"`
	BusinessName          string  `gorm:"not null" json:"businessName"`
	BusinessAddress       string  `json:"businessAddress"`
	Status                string  `gorm:"default:'PENDING';index" json:"status"`
	RejectionReason       string  `json:"rejectionReason,omitempty"`
	TotalCommissionEarned float64 `gorm:"default:0" json:"totalCommissionEarned"`
	ApprovedAt            *time.Time `json:"approvedAt,omitempty"`
	ApproverID            *uint      `json:"approverId,omitempty"`
	Approver              *User      `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// agentStatusGraph is the approval state machine:
// PENDING -> {ACTIVE, REJECTED}, ACTIVE <-> SUSPENDED, REJECTED terminal.
var agentStatusGraph = map[string][]string{
	AgentStatusPending:   {AgentStatusActive, AgentStatusRejected},
	AgentStatusActive:    {AgentStatusSuspended},
	AgentStatusSuspended: {AgentStatusActive},
	AgentStatusRejected:  {},
}

// CanTransitionTo reports whether the agent's status may move to target.
func (a *Agent) CanTransitionTo(target string) bool {
	for _, s := range agentStatusGraph[a.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// AllowedStatusTargets returns the legal target statuses from the current one.
func (a *Agent) AllowedStatusTargets() []string {
	return append([]string(nil), agentStatusGraph[a.Status]...)
}
