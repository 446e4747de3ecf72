package repositories

import (
	"context"
	"fmt"
	"time"

	"takapay/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) GetDailyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ? AND status <> ? AND created_at BETWEEN ? AND ?",
			userID, models.TransactionStatusFailed, start, end).
		Select("COALESCE(SUM(amount + fee), 0)").
		Scan(total).Error
	if err != nil {
		return fmt.Errorf("failed to get daily transaction total: %w", err)
	}
	return nil
}

func (r *walletRepository) GetMonthlyTransactionTotal(ctx context.Context, userID uint, start, end time.Time, total *float64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ? AND status <> ? AND created_at BETWEEN ? AND ?",
			userID, models.TransactionStatusFailed, start, end).
		Select("COALESCE(SUM(amount + fee), 0)").
		Scan(total).Error
	if err != nil {
		return fmt.Errorf("failed to get monthly transaction total: %w", err)
	}
	return nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}

func (r *walletRepository) UpdateStatus(walletID uint, status, reason string) error {
	result := r.db.Model(&models.Wallet{}).Where("id = ?", walletID).
		Updates(map[string]interface{}{"status": status, "status_reason": reason})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}
