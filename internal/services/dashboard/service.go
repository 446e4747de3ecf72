// Package dashboard aggregates ledger figures for the admin analytics view.
// Every derived figure is guarded so an empty ledger renders zeros, never
// NaN or a division panic.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"takapay/internal/repositories"
	"takapay/internal/services/fee"
)

// Metrics is the analytics dashboard payload.
type Metrics struct {
	TotalTransactions  int64            `json:"totalTransactions"`
	CompletedCount     int64            `json:"completedCount"`
	PendingCount       int64            `json:"pendingCount"`
	FailedCount        int64            `json:"failedCount"`
	TotalVolume        float64          `json:"totalVolume"`
	TotalFees          float64          `json:"totalFees"`
	AverageTransaction float64          `json:"averageTransaction"`
	SuccessRate        int              `json:"successRate"`
	CountsByType       map[string]int64 `json:"countsByType"`
	GeneratedAt        time.Time        `json:"generatedAt"`
}

// Service defines the analytics dashboard operations.
type Service interface {
	// Overview aggregates platform-wide figures for the given window.
	Overview(ctx context.Context, start, end time.Time) (*Metrics, error)

	// UserOverview aggregates figures for a single user.
	UserOverview(ctx context.Context, userID uint) (*Metrics, error)
}

type service struct {
	txs repositories.TransactionRepository
}

// NewService creates a new dashboard service
func NewService(txs repositories.TransactionRepository) Service {
	if txs == nil {
		panic("txs is required")
	}
	return &service{txs: txs}
}

func (s *service) Overview(ctx context.Context, start, end time.Time) (*Metrics, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, -1, 0)
	}

	stats, err := s.txs.GetStats(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger: %w", err)
	}

	counts, err := s.txs.CountByType(ctx, 0, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count by type: %w", err)
	}

	return buildMetrics(stats, counts), nil
}

func (s *service) UserOverview(ctx context.Context, userID uint) (*Metrics, error) {
	stats, err := s.txs.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger: %w", err)
	}
	return buildMetrics(stats, nil), nil
}

func buildMetrics(stats *repositories.TransactionStats, counts map[string]int64) *Metrics {
	return &Metrics{
		TotalTransactions:  stats.TotalTransactions,
		CompletedCount:     stats.CompletedCount,
		PendingCount:       stats.PendingCount,
		FailedCount:        stats.FailedCount,
		TotalVolume:        stats.TotalVolume,
		TotalFees:          stats.TotalFees,
		AverageTransaction: fee.SafeAverage(stats.TotalVolume, stats.TotalTransactions),
		SuccessRate:        fee.SuccessRate(stats.CompletedCount, stats.TotalTransactions),
		CountsByType:       counts,
		GeneratedAt:        time.Now(),
	}
}
