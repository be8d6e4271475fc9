package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/moneyapp/internal/models"
	"github.com/moneyapp/internal/repository"
)

// TransactionRequest is the full set of writable transaction fields
type TransactionRequest struct {
	Category    models.Category        `json:"category" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required,min=5,max=100"`
	Date        models.Date            `json:"date"`
}

// Validate re-checks the request for callers that bypass HTTP binding
func (r *TransactionRequest) Validate() error {
	if _, err := models.ParseCategory(string(r.Category)); err != nil {
		return invalid("category", "%v", err)
	}
	if _, err := models.ParseTransactionType(string(r.Type)); err != nil {
		return invalid("type", "%v", err)
	}
	if !(r.Amount > 0) {
		return invalid("amount", "must be greater than 0")
	}
	if n := utf8.RuneCountInString(r.Description); n < models.DescriptionMinLength || n > models.DescriptionMaxLength {
		return invalid("description", "must be between %d and %d characters", models.DescriptionMinLength, models.DescriptionMaxLength)
	}
	if r.Date.IsZero() {
		return invalid("date", "is required")
	}
	return nil
}

// TransactionService handles transaction operations for owners and admins
type TransactionService struct {
	store repository.Store
	guard AccessGuard
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(store repository.Store) *TransactionService {
	return &TransactionService{store: store}
}

// List returns the caller's transactions
func (s *TransactionService) List(ctx context.Context, claims *Claims) ([]models.Transaction, error) {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	return s.store.Transactions().ListByOwner(ctx, claims.UserID)
}

// Get returns one of the caller's transactions
func (s *TransactionService) Get(ctx context.Context, claims *Claims, id uint) (*models.Transaction, error) {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	return s.owned(ctx, s.store, claims, id)
}

// Create stores a new transaction owned by the caller
func (s *TransactionService) Create(ctx context.Context, claims *Claims, req *TransactionRequest) (*models.Transaction, error) {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Category:    req.Category,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		OwnerID:     claims.UserID,
	}
	// A token outlives its user; the owner must still exist when the row is written
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		if _, err := st.Users().GetByID(ctx, claims.UserID); err != nil {
			return ownerErr(err)
		}
		if err := st.Transactions().Create(ctx, tx); err != nil {
			return ownerErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Update replaces every writable field of one of the caller's transactions
func (s *TransactionService) Update(ctx context.Context, claims *Claims, id uint, req *TransactionRequest) (*models.Transaction, error) {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		tx, err := s.owned(ctx, st, claims, id)
		if err != nil {
			return err
		}
		tx.Category = req.Category
		tx.Type = req.Type
		tx.Amount = req.Amount
		tx.Description = req.Description
		tx.Date = req.Date
		if err := st.Transactions().Update(ctx, tx); err != nil {
			return mapTransactionErr(err)
		}
		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one of the caller's transactions
func (s *TransactionService) Delete(ctx context.Context, claims *Claims, id uint) error {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return err
	}
	return s.store.WithinTx(ctx, func(st repository.Store) error {
		if _, err := s.owned(ctx, st, claims, id); err != nil {
			return err
		}
		return mapTransactionErr(st.Transactions().Delete(ctx, id))
	})
}

// ListAll returns every transaction; admin only
func (s *TransactionService) ListAll(ctx context.Context, claims *Claims) ([]models.Transaction, error) {
	if err := s.guard.RequireAdmin(claims); err != nil {
		return nil, err
	}
	return s.store.Transactions().List(ctx)
}

// AdminDelete removes any transaction; admin only
func (s *TransactionService) AdminDelete(ctx context.Context, claims *Claims, id uint) error {
	if err := s.guard.RequireAdmin(claims); err != nil {
		return err
	}
	return mapTransactionErr(s.store.Transactions().Delete(ctx, id))
}

// owned loads a transaction and lets the guard decide whether the caller may see it.
// Absent and foreign transactions produce the same ErrNotFound.
func (s *TransactionService) owned(ctx context.Context, st repository.Store, claims *Claims, id uint) (*models.Transaction, error) {
	tx, err := st.Transactions().GetByID(ctx, id, &claims.UserID)
	if err != nil {
		return nil, mapTransactionErr(err)
	}
	if err := s.guard.RequireOwner(claims, tx.OwnerID); err != nil {
		return nil, err
	}
	return tx, nil
}

// ownerErr treats a vanished owner like any other stale credential
func ownerErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUnauthorized
	}
	return fmt.Errorf("failed to create transaction: %w", err)
}

func mapTransactionErr(err error) error {
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return ErrNotFound
	}
	return err
}
