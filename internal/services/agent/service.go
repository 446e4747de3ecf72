// Package agent implements the agent onboarding and approval workflow.
// Applications start PENDING; an admin moves them through the explicit
// transition graph on the model, with a per-agent lock so concurrent
// decisions cannot race.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/utils/pagination"

	"github.com/google/uuid"
)

// Service defines agent management operations.
type Service interface {
	// Register files a PENDING agent application for an existing user.
	Register(ctx context.Context, userID uint, input RegisterInput) (*models.Agent, error)

	// Approve activates a PENDING agent. Only one decision may be in
	// flight per agent at a time.
	Approve(ctx context.Context, agentID, approverID uint) (*models.Agent, error)

	// Reject declines a PENDING agent with a reason of at least
	// MinRejectionReasonLength characters. The reason is validated before
	// anything else runs.
	Reject(ctx context.Context, agentID, approverID uint, reason string) (*models.Agent, error)

	// Suspend and Reactivate move an agent between ACTIVE and SUSPENDED.
	Suspend(ctx context.Context, agentID uint, reason string) (*models.Agent, error)
	Reactivate(ctx context.Context, agentID uint) (*models.Agent, error)

	// Read side
	Details(ctx context.Context, agentID uint) (*models.Agent, error)
	List(ctx context.Context, status string, p *pagination.Pagination) ([]models.Agent, error)
	Transactions(ctx context.Context, agentID uint, p *pagination.Pagination) ([]models.TransactionView, error)
}

// Locker serializes admin decisions per agent.
type Locker interface {
	AcquireActionLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseActionLock(ctx context.Context, key string) error
}

type service struct {
	agents repositories.AgentRepository
	txs    repositories.TransactionRepository
	locks  Locker
}

// NewService creates a new agent service
func NewService(agents repositories.AgentRepository, txs repositories.TransactionRepository, locks Locker) Service {
	if agents == nil {
		panic("agents is required")
	}
	if locks == nil {
		panic("locks is required")
	}

	return &service{
		agents: agents,
		txs:    txs,
		locks:  locks,
	}
}

func (s *service) Register(ctx context.Context, userID uint, input RegisterInput) (*models.Agent, error) {
	if input.BusinessName == "" {
		return nil, fmt.Errorf("business name is required")
	}

	if existing, err := s.agents.GetByUserID(userID); err == nil {
		return nil, fmt.Errorf("user already has an agent application (%s)", existing.Status)
	} else if err != repositories.ErrAgentNotFound {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	agent := &models.Agent{
		UserID:          userID,
		AgentCode:       newAgentCode(),
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		Status:          models.AgentStatusPending,
	}
	if err := s.agents.Create(agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return agent, nil
}

func (s *service) Approve(ctx context.Context, agentID, approverID uint) (*models.Agent, error) {
	return s.decide(ctx, agentID, models.AgentStatusActive, func(agent *models.Agent) {
		now := time.Now()
		agent.ApprovedAt = &now
		agent.ApproverID = &approverID
		agent.RejectionReason = ""
	})
}

func (s *service) Reject(ctx context.Context, agentID, approverID uint, reason string) (*models.Agent, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < MinRejectionReasonLength {
		return nil, ErrReasonTooShort
	}

	return s.decide(ctx, agentID, models.AgentStatusRejected, func(agent *models.Agent) {
		agent.ApproverID = &approverID
		agent.RejectionReason = reason
	})
}

func (s *service) Suspend(ctx context.Context, agentID uint, reason string) (*models.Agent, error) {
	return s.decide(ctx, agentID, models.AgentStatusSuspended, func(agent *models.Agent) {
		agent.RejectionReason = reason
	})
}

func (s *service) Reactivate(ctx context.Context, agentID uint) (*models.Agent, error) {
	return s.decide(ctx, agentID, models.AgentStatusActive, func(agent *models.Agent) {
		agent.RejectionReason = ""
	})
}

// decide applies a status transition under the per-agent action lock.
func (s *service) decide(ctx context.Context, agentID uint, target string, apply func(*models.Agent)) (*models.Agent, error) {
	lockKey := fmt.Sprintf("agent:%d", agentID)
	acquired, err := s.locks.AcquireActionLock(ctx, lockKey, actionLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire decision lock: %w", err)
	}
	if !acquired {
		return nil, ErrActionInFlight
	}
	defer s.locks.ReleaseActionLock(ctx, lockKey)

	agent, err := s.agents.GetByID(agentID)
	if err != nil {
		if err == repositories.ErrAgentNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	if !agent.CanTransitionTo(target) {
		if agent.Status == models.AgentStatusRejected ||
			(target == models.AgentStatusRejected && agent.Status != models.AgentStatusPending) {
			return nil, fmt.Errorf("%w: already %s", ErrAlreadyDecided, agent.Status)
		}
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %s)",
			ErrIllegalTransition, agent.Status, target,
			strings.Join(agent.AllowedStatusTargets(), ", "))
	}

	agent.Status = target
	apply(agent)

	if err := s.agents.Update(agent); err != nil {
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}
	return agent, nil
}

func (s *service) Details(ctx context.Context, agentID uint) (*models.Agent, error) {
	agent, err := s.agents.GetByID(agentID)
	if err != nil {
		if err == repositories.ErrAgentNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return agent, nil
}

func (s *service) List(ctx context.Context, status string, p *pagination.Pagination) ([]models.Agent, error) {
	agents, total, err := s.agents.ListPaginated(status, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	p.Total = total
	return agents, nil
}

func (s *service) Transactions(ctx context.Context, agentID uint, p *pagination.Pagination) ([]models.TransactionView, error) {
	agent, err := s.Details(ctx, agentID)
	if err != nil {
		return nil, err
	}

	txs, total, err := s.txs.ListForUser(ctx, agent.UserID, repositories.TransactionListFilter{}, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent transactions: %w", err)
	}
	p.Total = total

	views := make([]models.TransactionView, len(txs))
	for i, tx := range txs {
		views[i] = models.TransactionView{
			Transaction: tx,
			IsCredited:  tx.CreditedFor(agent.UserID),
			Serial:      p.Serial(i),
		}
	}
	return views, nil
}

// newAgentCode mints a short human-readable agent code.
func newAgentCode() string {
	return "AG-" + strings.ToUpper(uuid.NewString()[:8])
}
