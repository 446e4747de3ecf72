package billing

// CreateBillerInput registers a new payee organization.
type CreateBillerInput struct {
	Name         string
	BillerCode   string
	BillType     string
	ContactEmail string
	ContactPhone string
	Description  string
	LogoURL      string
}

// UpdateBillerInput changes a biller's mutable fields. BillerCode and
// BillType are present only so attempts to change them can be rejected.
type UpdateBillerInput struct {
	Name         string
	BillerCode   string
	BillType     string
	ContactEmail string
	ContactPhone string
	Description  string
	LogoURL      string
}

// PayBillRequest pays a bill from the caller's wallet.
type PayBillRequest struct {
	BillerID      uint
	AccountNumber string
	Amount        float64
	BillingMonth  int
	BillingYear   int
}
