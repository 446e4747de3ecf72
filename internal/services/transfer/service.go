// Package transfer moves wallet money to external bank accounts. Transfers
// settle asynchronously: initiation debits the wallet and records a PENDING
// ledger row, settlement moves it to COMPLETED or FAILED with a refund.
package transfer

import (
	"context"
	"fmt"
	"log"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/fee"

	"github.com/google/uuid"
)

// Service defines bank transfer operations.
type Service interface {
	// Quote previews the fee for the given amount and actor role.
	Quote(amount float64, role string) (fee.Quote, error)

	// Initiate debits the wallet for amount plus fee and records a PENDING
	// transfer awaiting bank settlement.
	Initiate(ctx context.Context, userID uint, req InitiateRequest) (*models.Transaction, error)

	// Complete marks a pending transfer settled.
	Complete(ctx context.Context, transactionID string) (*models.Transaction, error)

	// Fail marks a pending transfer failed and refunds the debit.
	Fail(ctx context.Context, transactionID string, reason string) (*models.Transaction, error)
}

// WalletOperator is the slice of the wallet service this package needs.
type WalletOperator interface {
	Credit(ctx context.Context, userID uint, amount float64) error
	Debit(ctx context.Context, userID uint, amount float64) error
}

type service struct {
	repo    repositories.TransactionRepository
	users   repositories.UserRepository
	wallets WalletOperator
	fees    *fee.Calculator
	config  Config
}

// NewService creates a new bank transfer service
func NewService(repo repositories.TransactionRepository, users repositories.UserRepository, wallets WalletOperator, fees *fee.Calculator, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if wallets == nil {
		panic("wallets is required")
	}
	if fees == nil {
		fees = fee.NewCalculator()
	}

	return &service{
		repo:    repo,
		users:   users,
		wallets: wallets,
		fees:    fees,
		config:  config,
	}
}

func (s *service) Quote(amount float64, role string) (fee.Quote, error) {
	q, err := s.fees.BankTransfer(amount, role)
	if err != nil {
		return fee.Quote{}, ErrInvalidAmount
	}
	return q, nil
}

func (s *service) Initiate(ctx context.Context, userID uint, req InitiateRequest) (*models.Transaction, error) {
	if req.BankName == "" || req.AccountNumber == "" {
		return nil, ErrMissingBankDetail
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	quote, err := s.Quote(req.Amount, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.wallets.Debit(ctx, userID, quote.Total); err != nil {
		return nil, err
	}
	// The fee is earned immediately; only the principal is refundable
	// alongside it if settlement fails.
	if quote.Fee > 0 && s.config.PlatformUserID != 0 {
		if err := s.wallets.Credit(ctx, s.config.PlatformUserID, quote.Fee); err != nil {
			s.wallets.Credit(ctx, userID, quote.Total)
			return nil, fmt.Errorf("failed to collect fee: %w", err)
		}
	}

	tx := &models.Transaction{
		TransactionID: fmt.Sprintf("TXN-%s", uuid.NewString()),
		Type:          models.TransactionTypeBankTransfer,
		SenderID:      userID,
		ReceiverID:    userID,
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		Status:        models.TransactionStatusPending,
		Description:   fmt.Sprintf("Bank transfer to %s", req.BankName),
		Metadata: models.NewJSON(map[string]interface{}{
			"bankName":      req.BankName,
			"accountNumber": req.AccountNumber,
			"accountHolder": req.AccountHolder,
		}),
	}
	if err := s.repo.Create(tx); err != nil {
		// Unwind the debit so the wallet is whole again.
		if cerr := s.wallets.Credit(ctx, userID, quote.Amount); cerr != nil {
			log.Printf("transfer unwind: principal refund for user %d failed: %v", userID, cerr)
		}
		if quote.Fee > 0 && s.config.PlatformUserID != 0 {
			if derr := s.wallets.Debit(ctx, s.config.PlatformUserID, quote.Fee); derr != nil {
				log.Printf("transfer unwind: fee recovery failed: %v", derr)
			} else if cerr := s.wallets.Credit(ctx, userID, quote.Fee); cerr != nil {
				log.Printf("transfer unwind: fee refund for user %d failed: %v", userID, cerr)
			}
		}
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}

	return tx, nil
}

func (s *service) Complete(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := s.pendingTransfer(transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx.Status = models.TransactionStatusCompleted
	tx.CompletedAt = &now
	if err := s.repo.Update(tx); err != nil {
		return nil, fmt.Errorf("failed to settle transfer: %w", err)
	}
	return tx, nil
}

func (s *service) Fail(ctx context.Context, transactionID string, reason string) (*models.Transaction, error) {
	tx, err := s.pendingTransfer(transactionID)
	if err != nil {
		return nil, err
	}

	// Recover the escrowed fee from the platform before touching the
	// sender. A failure here leaves the transfer PENDING and retryable.
	if tx.Fee > 0 && s.config.PlatformUserID != 0 {
		if err := s.wallets.Debit(ctx, s.config.PlatformUserID, tx.Fee); err != nil {
			return nil, fmt.Errorf("failed to recover transfer fee: %w", err)
		}
	}

	if err := s.wallets.Credit(ctx, tx.SenderID, tx.Amount+tx.Fee); err != nil {
		// Re-escrow the fee so the books still match the PENDING row.
		if tx.Fee > 0 && s.config.PlatformUserID != 0 {
			if cerr := s.wallets.Credit(ctx, s.config.PlatformUserID, tx.Fee); cerr != nil {
				log.Printf("transfer %s: fee re-escrow failed after refund error: %v", tx.TransactionID, cerr)
			}
		}
		return nil, fmt.Errorf("failed to refund transfer: %w", err)
	}

	tx.Status = models.TransactionStatusFailed
	if reason != "" {
		if tx.Metadata == nil {
			tx.Metadata = models.JSON{}
		}
		tx.Metadata["failureReason"] = reason
	}
	if err := s.repo.Update(tx); err != nil {
		log.Printf("transfer %s: refunded but still PENDING, needs manual settlement: %v", tx.TransactionID, err)
		return nil, fmt.Errorf("failed to mark transfer failed: %w", err)
	}

	return tx, nil
}

func (s *service) pendingTransfer(transactionID string) (*models.Transaction, error) {
	tx, err := s.repo.GetByTransactionID(transactionID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if tx.Type != models.TransactionTypeBankTransfer {
		return nil, ErrTransferNotFound
	}
	if tx.Status != models.TransactionStatusPending {
		return nil, ErrNotPending
	}
	return tx, nil
}
