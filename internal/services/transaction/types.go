package transaction

// SendMoneyRequest is a personal transfer to another wallet holder.
type SendMoneyRequest struct {
	ReceiverPhone string
	Amount        float64
	Description   string
}

// CashInRequest is an agent crediting a customer's wallet with cash taken
// over the counter.
type CashInRequest struct {
	CustomerPhone string
	Amount        float64
}

// CashOutRequest is a customer withdrawing cash through an agent.
type CashOutRequest struct {
	AgentCode string
	Amount    float64
}

// Config holds transaction processing configuration.
type Config struct {
	MaxAmount      float64
	MinAmount      float64
	PlatformUserID uint
}
