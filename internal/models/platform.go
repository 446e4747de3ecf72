package models

import "time"

// PlatformWalletStats aggregates the operator's own ledger account: fees
// collected in, commissions and bonuses paid out.
type PlatformWalletStats struct {
	Balance              float64    `json:"balance"`
	TotalFeesCollected   float64    `json:"totalFeesCollected"`
	TotalCommissionsPaid float64    `json:"totalCommissionsPaid"`
	TotalBonusesGiven    float64    `json:"totalBonusesGiven"`
	NetRevenue           float64    `json:"netRevenue"`
	LastTransactionAt    *time.Time `json:"lastTransactionAt,omitempty"`
}

// ReconciliationResult compares the platform wallet's stored balance against
// a balance recomputed from its transaction history.
// Invariants: Discrepancy = CurrentBalance - CalculatedBalance and
// Success is true exactly when Discrepancy is zero.
type ReconciliationResult struct {
	Success                 bool      `json:"success"`
	CurrentBalance          float64   `json:"currentBalance"`
	CalculatedBalance       float64   `json:"calculatedBalance"`
	Discrepancy             float64   `json:"discrepancy"`
	ReconciliationTimestamp time.Time `json:"reconciliationTimestamp"`
}
