package repositories

import (
	"fmt"

	"takapay/internal/models"

	"gorm.io/gorm"
)

// FundingCardRepository defines the interface for funding-card storage.
type FundingCardRepository interface {
	Create(card *models.FundingCard) error
	GetByID(id uint) (*models.FundingCard, error)
	GetByUserID(userID uint) ([]models.FundingCard, error)
	Delete(id uint) error
}

type fundingCardRepository struct {
	db *gorm.DB
}

func NewFundingCardRepository(db *gorm.DB) FundingCardRepository {
	return &fundingCardRepository{db: db}
}

func (r *fundingCardRepository) Create(card *models.FundingCard) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *fundingCardRepository) GetByID(id uint) (*models.FundingCard, error) {
	var card models.FundingCard
	if err := r.db.First(&card, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (r *fundingCardRepository) GetByUserID(userID uint) ([]models.FundingCard, error) {
	var cards []models.FundingCard
	if err := r.db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return cards, nil
}

func (r *fundingCardRepository) Delete(id uint) error {
	result := r.db.Delete(&models.FundingCard{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
