package transfer

// InitiateRequest starts a transfer from a wallet to an external bank account.
type InitiateRequest struct {
	BankName      string
	AccountNumber string
	AccountHolder string
	Amount        float64
}

// Config holds bank transfer configuration.
type Config struct {
	PlatformUserID uint
}
