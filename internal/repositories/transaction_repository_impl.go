package repositories

import (
	"context"
	"fmt"
	"time"

	"takapay/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("transaction_id = ?", transactionID).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) Update(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListForUser(ctx context.Context, userID uint, filter TransactionListFilter, limit, offset int) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, total, nil
}

func (r *transactionRepository) GetStats(ctx context.Context, userID uint) (*TransactionStats, error) {
	var stats TransactionStats
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if userID != 0 {
		query = query.Where("sender_id = ? OR receiver_id = ?", userID, userID)
	}

	err := query.Select(`
		COUNT(*) as total_transactions,
		COALESCE(SUM(CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END), 0) as completed_count,
		COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0) as pending_count,
		COALESCE(SUM(CASE WHEN status = 'FAILED' THEN 1 ELSE 0 END), 0) as failed_count,
		COALESCE(SUM(amount), 0) as total_volume,
		COALESCE(SUM(fee), 0) as total_fees
	`).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	return &stats, nil
}

func (r *transactionRepository) CountByType(ctx context.Context, userID uint, start, end time.Time) (map[string]int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("created_at BETWEEN ? AND ?", start, end)
	if userID != 0 {
		query = query.Where("sender_id = ? OR receiver_id = ?", userID, userID)
	}

	rows, err := query.Select("type, COUNT(*) as count").Group("type").Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var txType string
		var count int64
		if err := rows.Scan(&txType, &count); err != nil {
			return nil, err
		}
		counts[txType] = count
	}
	return counts, rows.Err()
}

func (r *transactionRepository) SumAmountByType(ctx context.Context, partyID uint, txType string, credited bool) (float64, error) {
	column := "sender_id"
	if credited {
		column = "receiver_id"
	}

	var total float64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where(column+" = ? AND type = ? AND status = ?", partyID, txType, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

func (r *transactionRepository) SumFeesTo(ctx context.Context, receiverID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("receiver_id = ? AND status = ?", receiverID, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(fee), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum fees: %w", err)
	}
	return total, nil
}

func (r *transactionRepository) SumCollectedFees(ctx context.Context, platformID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("sender_id <> ? AND status <> ?", platformID, models.TransactionStatusFailed).
		Select("COALESCE(SUM(fee), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum collected fees: %w", err)
	}
	return total, nil
}

func (r *transactionRepository) ReconcileBalance(ctx context.Context, partyID uint) (float64, error) {
	var credits float64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("receiver_id = ? AND sender_id <> ? AND status = ?",
			partyID, partyID, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&credits).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger credits: %w", err)
	}

	var debits float64
	err = r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("sender_id = ? AND receiver_id <> ? AND status = ?",
			partyID, partyID, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&debits).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger debits: %w", err)
	}

	fees, err := r.SumCollectedFees(ctx, partyID)
	if err != nil {
		return 0, err
	}

	return credits + fees - debits, nil
}

func (r *transactionRepository) LastTransactionTime(ctx context.Context, partyID uint) (*time.Time, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", partyID, partyID).
		Order("created_at DESC").
		First(&tx).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last transaction: %w", err)
	}
	return &tx.CreatedAt, nil
}
