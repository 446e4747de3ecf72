package repositories

import (
	"context"
	"fmt"

	"takapay/internal/models"

	"gorm.io/gorm"
)

// BillerRepository defines the interface for biller and bill-payment queries.
type BillerRepository interface {
	Create(biller *models.Biller) error
	GetByID(id uint) (*models.Biller, error)
	GetByCode(billerCode string) (*models.Biller, error)
	Update(biller *models.Biller) error
	Delete(id uint) error
	List(status string) ([]models.Biller, error)
	CreditBalance(billerID uint, amount float64) error

	CreateBillPayment(payment *models.BillPayment) error
	UpdateBillPayment(payment *models.BillPayment) error
	ListBillPaymentsForUser(ctx context.Context, userID uint, limit, offset int) ([]models.BillPayment, int64, error)
}

type billerRepository struct {
	db *gorm.DB
}

func NewBillerRepository(db *gorm.DB) BillerRepository {
	return &billerRepository{db: db}
}

func (r *billerRepository) Create(biller *models.Biller) error {
	if err := r.db.Create(biller).Error; err != nil {
		return fmt.Errorf("failed to create biller: %w", err)
	}
	return nil
}

func (r *billerRepository) GetByID(id uint) (*models.Biller, error) {
	var biller models.Biller
	if err := r.db.First(&biller, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrBillerNotFound
		}
		return nil, fmt.Errorf("failed to get biller: %w", err)
	}
	return &biller, nil
}

func (r *billerRepository) GetByCode(billerCode string) (*models.Biller, error) {
	var biller models.Biller
	if err := r.db.Where("biller_code = ?", billerCode).First(&biller).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrBillerNotFound
		}
		return nil, fmt.Errorf("failed to get biller by code: %w", err)
	}
	return &biller, nil
}

func (r *billerRepository) Update(biller *models.Biller) error {
	if err := r.db.Save(biller).Error; err != nil {
		return fmt.Errorf("failed to update biller: %w", err)
	}
	return nil
}

func (r *billerRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Biller{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete biller: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBillerNotFound
	}
	return nil
}

func (r *billerRepository) List(status string) ([]models.Biller, error) {
	query := r.db.Model(&models.Biller{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var billers []models.Biller
	if err := query.Order("name ASC").Find(&billers).Error; err != nil {
		return nil, fmt.Errorf("failed to list billers: %w", err)
	}
	return billers, nil
}

func (r *billerRepository) CreditBalance(billerID uint, amount float64) error {
	result := r.db.Model(&models.Biller{}).Where("id = ?", billerID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit biller balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBillerNotFound
	}
	return nil
}

func (r *billerRepository) CreateBillPayment(payment *models.BillPayment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create bill payment: %w", err)
	}
	return nil
}

func (r *billerRepository) UpdateBillPayment(payment *models.BillPayment) error {
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update bill payment: %w", err)
	}
	return nil
}

func (r *billerRepository) ListBillPaymentsForUser(ctx context.Context, userID uint, limit, offset int) ([]models.BillPayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BillPayment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bill payments: %w", err)
	}

	var payments []models.BillPayment
	err := query.Preload("Biller").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bill payments: %w", err)
	}

	return payments, total, nil
}
