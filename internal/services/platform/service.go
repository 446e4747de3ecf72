// Package platform reports on the operator's own ledger account: the wallet
// that collects fees and pays out commissions and bonuses. Reconciliation
// recomputes that wallet's balance from the transaction history and flags any
// drift.
package platform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/utils/pagination"
)

var ErrPlatformWalletMissing = errors.New("platform wallet not found")

// Service defines platform wallet reporting operations.
type Service interface {
	Stats(ctx context.Context) (*models.PlatformWalletStats, error)
	Transactions(ctx context.Context, p *pagination.Pagination) ([]models.TransactionView, error)

	// Reconcile compares the stored platform balance against a balance
	// recomputed from the ledger. Success is true exactly when the
	// discrepancy is zero.
	Reconcile(ctx context.Context) (*models.ReconciliationResult, error)
}

type service struct {
	wallets        repositories.WalletRepository
	txs            repositories.TransactionRepository
	platformUserID uint
}

// NewService creates a new platform reporting service
func NewService(wallets repositories.WalletRepository, txs repositories.TransactionRepository, platformUserID uint) Service {
	if wallets == nil {
		panic("wallets is required")
	}
	if txs == nil {
		panic("txs is required")
	}
	if platformUserID == 0 {
		panic("platformUserID is required")
	}

	return &service{
		wallets:        wallets,
		txs:            txs,
		platformUserID: platformUserID,
	}
}

func (s *service) Stats(ctx context.Context) (*models.PlatformWalletStats, error) {
	wallet, err := s.wallets.GetByUserID(s.platformUserID)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return nil, ErrPlatformWalletMissing
		}
		return nil, fmt.Errorf("failed to get platform wallet: %w", err)
	}

	fees, err := s.txs.SumCollectedFees(ctx, s.platformUserID)
	if err != nil {
		return nil, err
	}

	commissions, err := s.txs.SumAmountByType(ctx, s.platformUserID, models.TransactionTypeCommission, false)
	if err != nil {
		return nil, err
	}

	bonuses, err := s.txs.SumAmountByType(ctx, s.platformUserID, models.TransactionTypeOnboardingBonus, false)
	if err != nil {
		return nil, err
	}
	cashback, err := s.txs.SumAmountByType(ctx, s.platformUserID, models.TransactionTypeCashback, false)
	if err != nil {
		return nil, err
	}
	bonuses += cashback

	lastAt, err := s.txs.LastTransactionTime(ctx, s.platformUserID)
	if err != nil {
		return nil, err
	}

	return &models.PlatformWalletStats{
		Balance:              round2(wallet.Balance),
		TotalFeesCollected:   round2(fees),
		TotalCommissionsPaid: round2(commissions),
		TotalBonusesGiven:    round2(bonuses),
		NetRevenue:           round2(fees - commissions - bonuses),
		LastTransactionAt:    lastAt,
	}, nil
}

func (s *service) Transactions(ctx context.Context, p *pagination.Pagination) ([]models.TransactionView, error) {
	txs, total, err := s.txs.ListForUser(ctx, s.platformUserID, repositories.TransactionListFilter{}, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list platform transactions: %w", err)
	}
	p.Total = total

	views := make([]models.TransactionView, len(txs))
	for i, tx := range txs {
		views[i] = models.TransactionView{
			Transaction: tx,
			IsCredited:  tx.CreditedFor(s.platformUserID),
			Serial:      p.Serial(i),
		}
	}
	return views, nil
}

func (s *service) Reconcile(ctx context.Context) (*models.ReconciliationResult, error) {
	wallet, err := s.wallets.GetByUserID(s.platformUserID)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return nil, ErrPlatformWalletMissing
		}
		return nil, fmt.Errorf("failed to get platform wallet: %w", err)
	}

	calculated, err := s.txs.ReconcileBalance(ctx, s.platformUserID)
	if err != nil {
		return nil, err
	}

	current := round2(wallet.Balance)
	calculated = round2(calculated)
	discrepancy := round2(current - calculated)

	return &models.ReconciliationResult{
		Success:                 discrepancy == 0,
		CurrentBalance:          current,
		CalculatedBalance:       calculated,
		Discrepancy:             discrepancy,
		ReconciliationTimestamp: time.Now(),
	}, nil
}

// round2 snaps a monetary figure to paisa so float drift never shows up as a
// phantom discrepancy.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
