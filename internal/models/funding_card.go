package models

import "time"

// FundingCard is a tokenized card linked for ADD_MONEY top-ups. Only the
// token and last four digits are ever stored.
type FundingCard struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"userId"`
	CardToken   string `gorm:"not null" json:"-"`
	CardType    string `gorm:"not null" json:"cardType"`
	ExpiryMonth string `gorm:"not null" json:"expiryMonth"`
	ExpiryYear  string `gorm:"not null" json:"expiryYear"`
	LastFour    string `gorm:"not null" json:"lastFour"`
	IsDefault   bool   `gorm:"default:false" json:"isDefault"`
	Status      string `gorm:"default:'active'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// CardToken represents the card tokenization result
type CardToken struct {
	Token    string `json:"token"`
	Expiry   string `json:"expiry"`
	CardType string `json:"cardType"`
}

// LinkCardInput represents the input for linking a new funding card
type LinkCardInput struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
}
