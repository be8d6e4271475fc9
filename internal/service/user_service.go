package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneyapp/internal/models"
	"github.com/moneyapp/internal/repository"
)

// ChangePasswordRequest represents the change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// DeleteUserSummary describes what an admin user deletion removed
type DeleteUserSummary struct {
	UserID              uint  `json:"user_id"`
	DeletedTransactions int64 `json:"deleted_transactions"`
}

// UserService handles profile and user administration operations
type UserService struct {
	store  repository.Store
	hasher PasswordHasher
	guard  AccessGuard
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store, hasher PasswordHasher) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
	}
}

// Current returns the caller's own profile
func (s *UserService) Current(ctx context.Context, claims *Claims) (*models.User, error) {
	if err := s.guard.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if err := s.guard.RequireOwner(claims, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the caller's password after re-checking the old one.
// A wrong old password yields ErrNotAcceptable and leaves the stored digest as is.
func (s *UserService) ChangePassword(ctx context.Context, claims *Claims, req *ChangePasswordRequest) error {
	if err := validatePassword("new_password", req.NewPassword); err != nil {
		return err
	}
	user, err := s.Current(ctx, claims)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.OldPassword, user.PasswordHash) {
		return ErrNotAcceptable
	}

	digest, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return mapUserErr(s.store.Users().UpdatePassword(ctx, user.ID, digest))
}

// ListAll returns every user; admin only
func (s *UserService) ListAll(ctx context.Context, claims *Claims) ([]models.User, error) {
	if err := s.guard.RequireAdmin(claims); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx)
}

// Delete removes a user and all of their transactions in one unit of work; admin only.
// Transactions go first, so no transaction ever references a missing owner.
func (s *UserService) Delete(ctx context.Context, claims *Claims, id uint) (*DeleteUserSummary, error) {
	if err := s.guard.RequireAdmin(claims); err != nil {
		return nil, err
	}

	summary := &DeleteUserSummary{UserID: id}
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		if _, err := st.Users().GetByID(ctx, id); err != nil {
			return mapUserErr(err)
		}
		n, err := st.Transactions().DeleteByOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete transactions of user %d: %w", id, err)
		}
		summary.DeletedTransactions = n
		if err := st.Users().Delete(ctx, id); err != nil {
			return mapUserErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrNotFound
	}
	return err
}
