package transaction

// CommissionRate is the agent commission on cash-in/cash-out volume, paid by
// the platform on top of the customer-side fee.
const CommissionRate = 0.0045

// Default processing limits
const (
	DefaultMaxAmount = 50000.0
	DefaultMinAmount = 1.0
)
