package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeSendMoney       = "SEND_MONEY"
	TransactionTypeAddMoney        = "ADD_MONEY"
	TransactionTypeCashOut         = "CASH_OUT"
	TransactionTypeCashIn          = "CASH_IN"
	TransactionTypeBillPayment     = "BILL_PAYMENT"
	TransactionTypeBankTransfer    = "BANK_TRANSFER"
	TransactionTypeCashback        = "CASHBACK"
	TransactionTypeCommission      = "COMMISSION"
	TransactionTypeOnboardingBonus = "ONBOARDING_BONUS"
)

// Transaction statuses
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// Transaction is the consolidated ledger record shared by every flow.
type Transaction struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	TransactionID string     `gorm:"index;not null" json:"transactionId"` // external display reference
	Type          string     `gorm:"not null;index" json:"type"`
	SenderID      uint       `gorm:"index" json:"senderId"`
	ReceiverID    uint       `gorm:"index" json:"receiverId"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Fee           float64    `gorm:"default:0" json:"fee"`
	Status        string     `gorm:"not null;default:'PENDING';index" json:"status"`
	Description   string     `json:"description,omitempty"`
	Currency      string     `gorm:"default:'BDT'" json:"currency"`
	Reference     string     `json:"reference,omitempty"` // links related transactions (fee, commission)
	Metadata      JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"-"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// transactionStatusGraph holds the legal status moves. PENDING may settle to
// COMPLETED or FAILED; both of those are terminal.
var transactionStatusGraph = map[string][]string{
	TransactionStatusPending:   {TransactionStatusCompleted, TransactionStatusFailed},
	TransactionStatusCompleted: {},
	TransactionStatusFailed:    {},
}

// CanTransitionTo reports whether the transaction status may move to target.
func (t *Transaction) CanTransitionTo(target string) bool {
	allowed, ok := transactionStatusGraph[t.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// CreditedFor reports whether this transaction increases userID's balance.
// Receivers are credited; the sender side of a transfer never is.
func (t *Transaction) CreditedFor(userID uint) bool {
	if t.ReceiverID == userID && t.SenderID == userID {
		// Self-referential rows (e.g. ADD_MONEY) credit their owner.
		return t.Type != TransactionTypeCashOut &&
			t.Type != TransactionTypeBillPayment &&
			t.Type != TransactionTypeBankTransfer
	}
	return t.ReceiverID == userID
}

// IsValidTransactionType reports whether t is a known transaction type.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeSendMoney, TransactionTypeAddMoney, TransactionTypeCashOut,
		TransactionTypeCashIn, TransactionTypeBillPayment, TransactionTypeBankTransfer,
		TransactionTypeCashback, TransactionTypeCommission, TransactionTypeOnboardingBonus:
		return true
	}
	return false
}

// IsValidTransactionStatus reports whether s is a known transaction status.
func IsValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// TransactionView is a Transaction annotated for a particular viewer.
// Serial is the 1-based display row number (offset + index + 1), never stored.
type TransactionView struct {
	Transaction
	IsCredited bool `json:"isCredited"`
	Serial     int  `json:"serial"`
}
