package transaction

import (
	"context"
	"fmt"
	"log"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/fee"
	"takapay/internal/services/wallet"
	"takapay/internal/utils/pagination"
)

type service struct {
	repo    repositories.TransactionRepository
	users   repositories.UserRepository
	agents  repositories.AgentRepository
	wallets WalletOperator
	fees    *fee.Calculator
	config  Config
}

// NewService creates a new transaction service
func NewService(repo repositories.TransactionRepository, users repositories.UserRepository, agents repositories.AgentRepository, wallets WalletOperator, fees *fee.Calculator, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if wallets == nil {
		panic("wallets is required")
	}
	if fees == nil {
		fees = fee.NewCalculator()
	}
	if config.MaxAmount == 0 {
		config.MaxAmount = DefaultMaxAmount
	}
	if config.MinAmount == 0 {
		config.MinAmount = DefaultMinAmount
	}

	return &service{
		repo:    repo,
		users:   users,
		agents:  agents,
		wallets: wallets,
		fees:    fees,
		config:  config,
	}
}

func (s *service) SendMoney(ctx context.Context, senderID uint, req SendMoneyRequest) (*models.Transaction, error) {
	quote, err := s.fees.SendMoney(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	receiver, err := s.users.GetByPhone(req.ReceiverPhone)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up receiver: %w", err)
	}
	if receiver.Status != models.UserStatusActive {
		return nil, ErrRecipientUnavailable
	}

	return s.wallets.Transfer(ctx, wallet.TransferRequest{
		FromUserID:  senderID,
		ToUserID:    receiver.ID,
		Amount:      quote.Amount,
		Fee:         quote.Fee,
		Type:        models.TransactionTypeSendMoney,
		Description: req.Description,
	})
}

func (s *service) CashIn(ctx context.Context, agentUserID uint, req CashInRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	agent, err := s.activeAgentByUserID(agentUserID)
	if err != nil {
		return nil, err
	}

	customer, err := s.users.GetByPhone(req.CustomerPhone)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer.Status != models.UserStatusActive {
		return nil, ErrRecipientUnavailable
	}

	// Cash-in is fee-free for the customer; the agent's float funds the credit.
	tx, err := s.wallets.Transfer(ctx, wallet.TransferRequest{
		FromUserID:  agentUserID,
		ToUserID:    customer.ID,
		Amount:      req.Amount,
		Fee:         0,
		Type:        models.TransactionTypeCashIn,
		Description: fmt.Sprintf("Cash in via agent %s", agent.AgentCode),
	})
	if err != nil {
		return nil, err
	}

	s.payCommission(ctx, agent, req.Amount, tx.TransactionID)
	return tx, nil
}

func (s *service) CashOut(ctx context.Context, customerID uint, req CashOutRequest) (*models.Transaction, error) {
	agent, err := s.agents.GetByCode(req.AgentCode)
	if err != nil {
		if err == repositories.ErrAgentNotFound {
			return nil, ErrAgentUnavailable
		}
		return nil, fmt.Errorf("failed to look up agent: %w", err)
	}
	if agent.Status != models.AgentStatusActive {
		return nil, ErrAgentUnavailable
	}

	customer, err := s.users.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	quote, err := s.fees.CashOut(req.Amount, customer.Role)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	tx, err := s.wallets.Transfer(ctx, wallet.TransferRequest{
		FromUserID:  customerID,
		ToUserID:    agent.UserID,
		Amount:      quote.Amount,
		Fee:         quote.Fee,
		Type:        models.TransactionTypeCashOut,
		Description: fmt.Sprintf("Cash out via agent %s", agent.AgentCode),
	})
	if err != nil {
		return nil, err
	}

	s.payCommission(ctx, agent, req.Amount, tx.TransactionID)
	return tx, nil
}

// payCommission pays the agent their cut of the handled volume out of the
// platform account. A failed commission never fails the customer's
// transaction; it is logged here and settled by a later payout run.
func (s *service) payCommission(ctx context.Context, agent *models.Agent, volume float64, reference string) {
	commission := volume * CommissionRate
	if commission <= 0 || s.config.PlatformUserID == 0 {
		return
	}

	_, err := s.wallets.Transfer(ctx, wallet.TransferRequest{
		FromUserID:  s.config.PlatformUserID,
		ToUserID:    agent.UserID,
		Amount:      commission,
		Fee:         0,
		Type:        models.TransactionTypeCommission,
		Description: fmt.Sprintf("Commission for agent %s", agent.AgentCode),
		Reference:   reference,
	})
	if err != nil {
		log.Printf("commission of %.2f to agent %s for %s failed: %v", commission, agent.AgentCode, reference, err)
		return
	}

	if err := s.agents.IncrementCommission(agent.ID, commission); err != nil {
		log.Printf("commission tally for agent %s on %s failed: %v", agent.AgentCode, reference, err)
	}
}

func (s *service) History(ctx context.Context, userID uint, filter repositories.TransactionListFilter, p *pagination.Pagination) ([]models.TransactionView, error) {
	if filter.Type != "" && !models.IsValidTransactionType(filter.Type) {
		return nil, ErrInvalidFilter
	}
	if filter.Status != "" && !models.IsValidTransactionStatus(filter.Status) {
		return nil, ErrInvalidFilter
	}

	txs, total, err := s.repo.ListForUser(ctx, userID, filter, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	p.Total = total

	views := make([]models.TransactionView, len(txs))
	for i, tx := range txs {
		views[i] = models.TransactionView{
			Transaction: tx,
			IsCredited:  tx.CreditedFor(userID),
			Serial:      p.Serial(i),
		}
	}
	return views, nil
}

func (s *service) Details(ctx context.Context, transactionID string, viewerID uint) (*models.TransactionView, error) {
	tx, err := s.repo.GetByTransactionID(transactionID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if viewerID != 0 && tx.SenderID != viewerID && tx.ReceiverID != viewerID {
		return nil, ErrNotParticipant
	}

	return &models.TransactionView{
		Transaction: *tx,
		IsCredited:  tx.CreditedFor(viewerID),
	}, nil
}

func (s *service) activeAgentByUserID(userID uint) (*models.Agent, error) {
	agent, err := s.agents.GetByUserID(userID)
	if err != nil {
		if err == repositories.ErrAgentNotFound {
			return nil, ErrAgentUnavailable
		}
		return nil, fmt.Errorf("failed to look up agent: %w", err)
	}
	if agent.Status != models.AgentStatusActive {
		return nil, ErrAgentUnavailable
	}
	return agent, nil
}
