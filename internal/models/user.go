package models

import (
	"time"

	"gorm.io/gorm"
)

// User statuses. New consumers start PENDING until their first verification
// completes; admins move them through the explicit transition graph below.
const (
	UserStatusPending   = "PENDING"
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
	UserStatusRejected  = "REJECTED"
)

// User roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	FirstName     string     `gorm:"not null" json:"firstName"`
	LastName      string     `gorm:"not null" json:"lastName"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone         string     `gorm:"uniqueIndex;not null" json:"phone"`
	Password      string     `gorm:"not null" json:"-"`
	Role          string     `gorm:"default:'user'" json:"role"`
	Status        string     `gorm:"default:'PENDING'" json:"status"`
	EmailVerified bool       `gorm:"default:false" json:"emailVerified"`
	PhoneVerified bool       `gorm:"default:false" json:"phoneVerified"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	NIDNumber     string     `json:"nidNumber,omitempty"`
	WalletID      *uint      `gorm:"unique;default:null" json:"walletId,omitempty"`
	Wallet        *Wallet    `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP   string     `json:"-"`
	TokenVersion  int        `gorm:"default:1" json:"-"`
}

// userStatusGraph is the legal consumer status transition set:
// PENDING -> {ACTIVE, REJECTED}, ACTIVE <-> SUSPENDED, REJECTED terminal.
var userStatusGraph = map[string][]string{
	UserStatusPending:   {UserStatusActive, UserStatusRejected},
	UserStatusActive:    {UserStatusSuspended},
	UserStatusSuspended: {UserStatusActive},
	UserStatusRejected:  {},
}

// CanTransitionTo reports whether the user's status may move to target.
func (u *User) CanTransitionTo(target string) bool {
	for _, s := range userStatusGraph[u.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// AllowedStatusTargets returns the legal target statuses from the current one,
// so callers can disable everything else.
func (u *User) AllowedStatusTargets() []string {
	return append([]string(nil), userStatusGraph[u.Status]...)
}

// IsValidUserStatus reports whether s is a known consumer status.
func IsValidUserStatus(s string) bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended, UserStatusRejected:
		return true
	}
	return false
}

// FullName returns the display name for lists and receipts.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
