// Package billing manages the biller registry and fee-free bill payments.
package billing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/fee"
	"takapay/internal/utils/pagination"

	"github.com/google/uuid"
)

// Service defines biller management and bill payment operations.
type Service interface {
	// Biller registry
	ListBillers(ctx context.Context, status string) ([]models.Biller, error)
	BillerDetails(ctx context.Context, id uint) (*models.Biller, error)
	CreateBiller(ctx context.Context, input CreateBillerInput) (*models.Biller, error)
	UpdateBiller(ctx context.Context, id uint, input UpdateBillerInput) (*models.Biller, error)
	UpdateBillerStatus(ctx context.Context, id uint, status string) (*models.Biller, error)
	DeleteBiller(ctx context.Context, id uint) error

	// Payments
	PayBill(ctx context.Context, userID uint, req PayBillRequest) (*models.BillPayment, error)
	PaymentHistory(ctx context.Context, userID uint, p *pagination.Pagination) ([]models.BillPayment, error)
}

// WalletOperator is the slice of the wallet service this package needs.
type WalletOperator interface {
	Debit(ctx context.Context, userID uint, amount float64) error
	Credit(ctx context.Context, userID uint, amount float64) error
}

type service struct {
	billers repositories.BillerRepository
	txs     repositories.TransactionRepository
	wallets WalletOperator
	fees    *fee.Calculator
}

// NewService creates a new billing service
func NewService(billers repositories.BillerRepository, txs repositories.TransactionRepository, wallets WalletOperator, fees *fee.Calculator) Service {
	if billers == nil {
		panic("billers is required")
	}
	if fees == nil {
		fees = fee.NewCalculator()
	}

	return &service{
		billers: billers,
		txs:     txs,
		wallets: wallets,
		fees:    fees,
	}
}

func (s *service) ListBillers(ctx context.Context, status string) ([]models.Biller, error) {
	if status != "" && !models.IsValidBillerStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.billers.List(status)
}

func (s *service) BillerDetails(ctx context.Context, id uint) (*models.Biller, error) {
	biller, err := s.billers.GetByID(id)
	if err != nil {
		if err == repositories.ErrBillerNotFound {
			return nil, ErrBillerNotFound
		}
		return nil, fmt.Errorf("failed to get biller: %w", err)
	}
	return biller, nil
}

func (s *service) CreateBiller(ctx context.Context, input CreateBillerInput) (*models.Biller, error) {
	input.BillerCode = strings.ToUpper(strings.TrimSpace(input.BillerCode))
	if input.Name == "" || input.BillerCode == "" {
		return nil, fmt.Errorf("name and biller code are required")
	}
	if !models.IsValidBillType(input.BillType) {
		return nil, ErrInvalidBillType
	}

	if _, err := s.billers.GetByCode(input.BillerCode); err == nil {
		return nil, ErrDuplicateCode
	} else if err != repositories.ErrBillerNotFound {
		return nil, fmt.Errorf("failed to check biller code: %w", err)
	}

	biller := &models.Biller{
		Name:         input.Name,
		BillerCode:   input.BillerCode,
		BillType:     input.BillType,
		Status:       models.BillerStatusActive,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Description:  input.Description,
		LogoURL:      input.LogoURL,
	}
	if err := s.billers.Create(biller); err != nil {
		return nil, fmt.Errorf("failed to create biller: %w", err)
	}
	return biller, nil
}

func (s *service) UpdateBiller(ctx context.Context, id uint, input UpdateBillerInput) (*models.Biller, error) {
	biller, err := s.BillerDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	// Identity fields are frozen at creation. A request carrying a
	// different code or type is rejected outright rather than silently
	// stripped.
	if input.BillerCode != "" && !strings.EqualFold(input.BillerCode, biller.BillerCode) {
		return nil, ErrImmutableField
	}
	if input.BillType != "" && input.BillType != biller.BillType {
		return nil, ErrImmutableField
	}

	if input.Name != "" {
		biller.Name = input.Name
	}
	biller.ContactEmail = input.ContactEmail
	biller.ContactPhone = input.ContactPhone
	biller.Description = input.Description
	biller.LogoURL = input.LogoURL

	if err := s.billers.Update(biller); err != nil {
		return nil, fmt.Errorf("failed to update biller: %w", err)
	}
	return biller, nil
}

func (s *service) UpdateBillerStatus(ctx context.Context, id uint, status string) (*models.Biller, error) {
	if !models.IsValidBillerStatus(status) {
		return nil, ErrInvalidStatus
	}

	biller, err := s.BillerDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if biller.Status == status {
		return nil, ErrStatusUnchanged
	}

	biller.Status = status
	if err := s.billers.Update(biller); err != nil {
		return nil, fmt.Errorf("failed to update biller status: %w", err)
	}
	return biller, nil
}

func (s *service) DeleteBiller(ctx context.Context, id uint) error {
	if _, err := s.BillerDetails(ctx, id); err != nil {
		return err
	}
	if err := s.billers.Delete(id); err != nil {
		return fmt.Errorf("failed to delete biller: %w", err)
	}
	return nil
}

func (s *service) PayBill(ctx context.Context, userID uint, req PayBillRequest) (*models.BillPayment, error) {
	if req.AccountNumber == "" {
		return nil, ErrMissingAccount
	}

	quote, err := s.fees.BillPayment(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	biller, err := s.BillerDetails(ctx, req.BillerID)
	if err != nil {
		return nil, err
	}
	if biller.Status != models.BillerStatusActive {
		return nil, ErrBillerUnavailable
	}

	if err := s.wallets.Debit(ctx, userID, quote.Total); err != nil {
		return nil, err
	}
	if err := s.billers.CreditBalance(biller.ID, quote.Amount); err != nil {
		if cerr := s.wallets.Credit(ctx, userID, quote.Total); cerr != nil {
			log.Printf("bill payment unwind: refund of %.2f to user %d failed: %v", quote.Total, userID, cerr)
		}
		return nil, fmt.Errorf("failed to credit biller: %w", err)
	}

	now := time.Now()
	tx := &models.Transaction{
		TransactionID: fmt.Sprintf("TXN-%s", uuid.NewString()),
		Type:          models.TransactionTypeBillPayment,
		SenderID:      userID,
		ReceiverID:    userID,
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		Status:        models.TransactionStatusCompleted,
		Description:   fmt.Sprintf("Bill payment to %s", biller.Name),
		CompletedAt:   &now,
		Metadata: models.NewJSON(map[string]interface{}{
			"billerCode":    biller.BillerCode,
			"accountNumber": req.AccountNumber,
		}),
	}
	if err := s.txs.Create(tx); err != nil {
		// Reverse the money movement so no funds sit outside the ledger.
		s.unwindPayment(ctx, userID, biller.ID, quote)
		return nil, fmt.Errorf("failed to record bill payment: %w", err)
	}

	payment := &models.BillPayment{
		TransactionID: tx.TransactionID,
		UserID:        userID,
		BillerID:      biller.ID,
		AccountNumber: req.AccountNumber,
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		TotalAmount:   quote.Total,
		Status:        models.TransactionStatusCompleted,
		BillingMonth:  req.BillingMonth,
		BillingYear:   req.BillingYear,
		ReceiptNumber: fmt.Sprintf("RCPT-%s", uuid.NewString()),
	}
	if err := s.billers.CreateBillPayment(payment); err != nil {
		tx.Status = models.TransactionStatusFailed
		if uerr := s.txs.Update(tx); uerr != nil {
			log.Printf("bill payment %s: could not mark failed: %v", tx.TransactionID, uerr)
		}
		s.unwindPayment(ctx, userID, biller.ID, quote)
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}

	payment.Biller = biller
	return payment, nil
}

// unwindPayment reverses the biller credit and the user debit after a ledger
// write fails. Each reversal error is logged so the imbalance is visible to
// reconciliation.
func (s *service) unwindPayment(ctx context.Context, userID, billerID uint, quote fee.Quote) {
	if err := s.billers.CreditBalance(billerID, -quote.Amount); err != nil {
		log.Printf("bill payment unwind: reversal of %.2f from biller %d failed: %v", quote.Amount, billerID, err)
	}
	if err := s.wallets.Credit(ctx, userID, quote.Total); err != nil {
		log.Printf("bill payment unwind: refund of %.2f to user %d failed: %v", quote.Total, userID, err)
	}
}

func (s *service) PaymentHistory(ctx context.Context, userID uint, p *pagination.Pagination) ([]models.BillPayment, error) {
	payments, total, err := s.billers.ListBillPaymentsForUser(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	p.Total = total
	return payments, nil
}
