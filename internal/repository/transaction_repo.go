package repository

import (
	"context"
	"errors"

	"github.com/moneyapp/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository handles transaction data access
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new transaction; a missing owner yields ErrUserNotFound
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	err := r.db.WithContext(ctx).Create(tx).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrUserNotFound
	}
	return err
}

// GetByID retrieves a transaction, optionally restricted to one owner
func (r *TransactionRepository) GetByID(ctx context.Context, id uint, ownerID *uint) (*models.Transaction, error) {
	var tx models.Transaction
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	result := query.First(&tx)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return &tx, nil
}

// ListByOwner retrieves all transactions of one user
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&txs)
	return txs, result.Error
}

// List retrieves every transaction
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	result := r.db.WithContext(ctx).Order("id").Find(&txs)
	return txs, result.Error
}

// Update replaces the mutable fields of a transaction. The owner is part of the
// filter and never written.
func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND owner_id = ?", tx.ID, tx.OwnerID).
		Updates(map[string]interface{}{
			"category":    tx.Category,
			"type":        tx.Type,
			"amount":      tx.Amount,
			"description": tx.Description,
			"date":        tx.Date,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes one transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteByOwner removes all transactions of one user
func (r *TransactionRepository) DeleteByOwner(ctx context.Context, ownerID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.Transaction{})
	return result.RowsAffected, result.Error
}
