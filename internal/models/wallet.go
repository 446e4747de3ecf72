package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Wallet statuses
const (
	WalletStatusActive = "active"
	WalletStatusLocked = "locked"
)

// LimitUnlimited marks a spend limit as uncapped. The sentinel is negative
// because a zero field would be dropped on insert in favor of the column
// defaults.
const LimitUnlimited float64 = -1

type Wallet struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Balance          float64   `gorm:"default:0" json:"balance"`
	AvailableBalance float64   `gorm:"default:0" json:"availableBalance"`
	PendingBalance   float64   `gorm:"default:0" json:"pendingBalance"`
	DailyLimit       float64   `gorm:"default:25000" json:"dailyLimit"`
	DailySpent       float64   `gorm:"default:0" json:"dailySpent"`
	MonthlyLimit     float64   `gorm:"default:200000" json:"monthlyLimit"`
	MonthlySpent     float64   `gorm:"default:0" json:"monthlySpent"`
	Currency         string    `gorm:"default:'BDT'" json:"currency"`
	Status           string    `gorm:"default:'active'" json:"status"`
	StatusReason     string    `gorm:"default:''" json:"statusReason,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"-"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balances start at zero regardless of input
	w.Balance = 0
	w.AvailableBalance = 0
	w.PendingBalance = 0
	return nil
}

// safeAmount clamps NaN, Inf and negative values to zero so a wallet never
// renders a nonsense figure.
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Sanitize returns a copy of the wallet with every monetary field clamped to a
// displayable value.
func (w Wallet) Sanitize() Wallet {
	w.Balance = safeAmount(w.Balance)
	w.AvailableBalance = safeAmount(w.AvailableBalance)
	w.PendingBalance = safeAmount(w.PendingBalance)
	w.DailyLimit = safeAmount(w.DailyLimit)
	w.DailySpent = safeAmount(w.DailySpent)
	w.MonthlyLimit = safeAmount(w.MonthlyLimit)
	w.MonthlySpent = safeAmount(w.MonthlySpent)
	if w.AvailableBalance > w.Balance {
		w.AvailableBalance = w.Balance
	}
	return w
}

// RemainingDailyLimit returns how much the wallet may still spend today.
func (w *Wallet) RemainingDailyLimit() float64 {
	return safeAmount(w.DailyLimit - w.DailySpent)
}

// RemainingMonthlyLimit returns how much the wallet may still spend this month.
func (w *Wallet) RemainingMonthlyLimit() float64 {
	return safeAmount(w.MonthlyLimit - w.MonthlySpent)
}
