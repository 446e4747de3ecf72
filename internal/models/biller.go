package models

import (
	"time"

	"gorm.io/gorm"
)

// Bill types
const (
	BillTypeElectricity  = "ELECTRICITY"
	BillTypeGas          = "GAS"
	BillTypeWater        = "WATER"
	BillTypeInternet     = "INTERNET"
	BillTypeMobile       = "MOBILE"
	BillTypeTV           = "TV"
	BillTypeOrganization = "ORGANIZATION"
)

// Biller statuses
const (
	BillerStatusActive    = "ACTIVE"
	BillerStatusSuspended = "SUSPENDED"
	BillerStatusInactive  = "INACTIVE"
)

// Biller is a registered payee organization. BillerCode and BillType are
// immutable after creation.
type Biller struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	BillerCode   string  `gorm:"uniqueIndex;size:32;not null" json:"billerCode"`
	BillType     string  `gorm:"not null" json:"billType"`
	Status       string  `gorm:"default:'ACTIVE';index" json:"status"`
	ContactEmail string  `json:"contactEmail,omitempty"`
	ContactPhone string  `json:"contactPhone,omitempty"`
	Description  string  `json:"description,omitempty"`
	LogoURL      string  `json:"logoUrl,omitempty"`
	Balance      float64 `gorm:"default:0" json:"balance"`
}

// IsValidBillType reports whether t is a known bill type.
func IsValidBillType(t string) bool {
	switch t {
	case BillTypeElectricity, BillTypeGas, BillTypeWater, BillTypeInternet,
		BillTypeMobile, BillTypeTV, BillTypeOrganization:
		return true
	}
	return false
}

// IsValidBillerStatus reports whether s is a known biller status.
func IsValidBillerStatus(s string) bool {
	switch s {
	case BillerStatusActive, BillerStatusSuspended, BillerStatusInactive:
		return true
	}
	return false
}

// BillPayment records a consumer paying a biller. Fee is fixed at zero for
// this flow, so TotalAmount always equals Amount.
type BillPayment struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	TransactionID string  `gorm:"index;not null" json:"transactionId"`
	UserID        uint    `gorm:"index;not null" json:"userId"`
	BillerID      uint    `gorm:"index;not null" json:"billerId"`
	Biller        *Biller `gorm:"foreignKey:BillerID" json:"biller,omitempty"`
	AccountNumber string  `gorm:"not null" json:"accountNumber"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Fee           float64 `gorm:"default:0" json:"fee"`
	TotalAmount   float64 `gorm:"not null" json:"totalAmount"`
	Status        string  `gorm:"not null;default:'PENDING'" json:"status"`
	BillingMonth  int     `json:"billingMonth,omitempty"`
	BillingYear   int     `json:"billingYear,omitempty"`
	ReceiptNumber string  `json:"receiptNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}
