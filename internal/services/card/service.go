// Package card links tokenized funding cards and tops up wallets from them.
// Raw card numbers never reach storage; only the token and last four digits
// are kept.
package card

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound   = errors.New("card not found")
	ErrNotCardOwner   = errors.New("card does not belong to user")
	ErrCardInactive   = errors.New("card is not active")
	ErrInvalidExpiry  = errors.New("invalid expiry date")
	ErrCardExpired    = errors.New("card has expired")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingDetails = errors.New("card number and expiry are required")
)

// Service defines funding-card operations.
type Service interface {
	LinkCard(ctx context.Context, userID uint, input models.LinkCardInput) (*models.FundingCard, error)
	ListCards(ctx context.Context, userID uint) ([]models.FundingCard, error)
	RemoveCard(ctx context.Context, userID, cardID uint) error

	// AddMoney tops up the user's wallet from a linked card and records the
	// ledger transaction.
	AddMoney(ctx context.Context, userID, cardID uint, amount float64) (*models.Transaction, error)
}

// WalletCreditor is the slice of the wallet service this package needs.
type WalletCreditor interface {
	Credit(ctx context.Context, userID uint, amount float64) error
}

type service struct {
	cards     repositories.FundingCardRepository
	txs       repositories.TransactionRepository
	wallets   WalletCreditor
	tokenizer Tokenizer
}

// NewService creates a new funding-card service
func NewService(cards repositories.FundingCardRepository, txs repositories.TransactionRepository, wallets WalletCreditor, tokenizer Tokenizer) Service {
	if cards == nil {
		panic("cards is required")
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}

	return &service{
		cards:     cards,
		txs:       txs,
		wallets:   wallets,
		tokenizer: tokenizer,
	}
}

func (s *service) LinkCard(ctx context.Context, userID uint, input models.LinkCardInput) (*models.FundingCard, error) {
	if err := validateExpiry(input); err != nil {
		return nil, err
	}

	tokenized, err := s.tokenizer.Tokenize(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.cards.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	card := &models.FundingCard{
		UserID:      userID,
		CardToken:   tokenized.Token,
		CardType:    tokenized.CardType,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
		LastFour:    tokenized.LastFour,
		IsDefault:   len(existing) == 0,
		Status:      "active",
	}
	if err := s.cards.Create(card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return card, nil
}

func (s *service) ListCards(ctx context.Context, userID uint) ([]models.FundingCard, error) {
	return s.cards.GetByUserID(userID)
}

func (s *service) RemoveCard(ctx context.Context, userID, cardID uint) error {
	card, err := s.ownedCard(userID, cardID)
	if err != nil {
		return err
	}
	return s.cards.Delete(card.ID)
}

func (s *service) AddMoney(ctx context.Context, userID, cardID uint, amount float64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	card, err := s.ownedCard(userID, cardID)
	if err != nil {
		return nil, err
	}
	if card.Status != "active" {
		return nil, ErrCardInactive
	}

	if err := s.wallets.Credit(ctx, userID, amount); err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		TransactionID: fmt.Sprintf("TXN-%s", uuid.NewString()),
		Type:          models.TransactionTypeAddMoney,
		SenderID:      userID,
		ReceiverID:    userID,
		Amount:        amount,
		Fee:           0,
		Status:        models.TransactionStatusCompleted,
		Description:   fmt.Sprintf("Add money from %s card ending %s", card.CardType, card.LastFour),
		CompletedAt:   &now,
	}
	if err := s.txs.Create(tx); err != nil {
		return nil, fmt.Errorf("failed to record top-up: %w", err)
	}
	return tx, nil
}

func (s *service) ownedCard(userID, cardID uint) (*models.FundingCard, error) {
	card, err := s.cards.GetByID(cardID)
	if err != nil {
		if err == repositories.ErrCardNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card.UserID != userID {
		return nil, ErrNotCardOwner
	}
	return card, nil
}

func validateExpiry(input models.LinkCardInput) error {
	if input.CardNumber == "" || input.ExpiryMonth == "" || input.ExpiryYear == "" {
		return ErrMissingDetails
	}

	month, err := strconv.Atoi(input.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidExpiry
	}
	year, err := strconv.Atoi(input.ExpiryYear)
	if err != nil {
		return ErrInvalidExpiry
	}

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}
	return nil
}
