package repositories

import (
	"fmt"

	"takapay/internal/models"

	"gorm.io/gorm"
)

// AgentRepository defines the interface for agent-related database operations
type AgentRepository interface {
	Create(agent *models.Agent) error
	GetByID(id uint) (*models.Agent, error)
	GetByUserID(userID uint) (*models.Agent, error)
	GetByCode(agentCode string) (*models.Agent, error)
	Update(agent *models.Agent) error
	ListPaginated(status string, limit, offset int) ([]models.Agent, int64, error)
	IncrementCommission(agentID uint, amount float64) error
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(agent *models.Agent) error {
	if err := r.db.Create(agent).Error; err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *agentRepository) GetByID(id uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.Preload("User").Preload("User.Wallet").Preload("Approver").First(&agent, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

func (r *agentRepository) GetByUserID(userID uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&agent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

func (r *agentRepository) GetByCode(agentCode string) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.Preload("User").Where("agent_code = ?", agentCode).First(&agent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

func (r *agentRepository) Update(agent *models.Agent) error {
	if err := r.db.Save(agent).Error; err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}
	return nil
}

func (r *agentRepository) ListPaginated(status string, limit, offset int) ([]models.Agent, int64, error) {
	query := r.db.Model(&models.Agent{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count agents: %w", err)
	}

	var agents []models.Agent
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&agents).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agents: %w", err)
	}

	return agents, total, nil
}

func (r *agentRepository) IncrementCommission(agentID uint, amount float64) error {
	result := r.db.Model(&models.Agent{}).Where("id = ?", agentID).
		UpdateColumn("total_commission_earned", gorm.Expr("total_commission_earned + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to increment commission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAgentNotFound
	}
	return nil
}
