// Package user implements admin-side consumer account management: details,
// transaction views, the explicit status transition graph, and the filtered
// listing backing the user directory.
package user

import (
	"context"
	"fmt"
	"strings"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/utils/pagination"
	"takapay/internal/validation"
)

// Service defines admin operations on consumer accounts.
type Service interface {
	Details(ctx context.Context, userID uint) (*models.User, error)
	Transactions(ctx context.Context, userID uint, p *pagination.Pagination) ([]models.TransactionView, error)

	// UpdateStatus moves an account through the transition graph. Illegal
	// moves are rejected with the legal target set in the error.
	UpdateStatus(ctx context.Context, userID uint, target string) (*StatusChange, error)

	// List returns one validated, filtered page of users.
	List(ctx context.Context, filter ListFilter, p *pagination.Pagination) (*ListResult, error)

	Delete(ctx context.Context, userID, adminID uint) error
}

type service struct {
	users repositories.UserRepository
	txs   repositories.TransactionRepository
}

// NewService creates a new user admin service
func NewService(users repositories.UserRepository, txs repositories.TransactionRepository) Service {
	if users == nil {
		panic("users is required")
	}

	return &service{
		users: users,
		txs:   txs,
	}
}

func (s *service) Details(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *service) Transactions(ctx context.Context, userID uint, p *pagination.Pagination) ([]models.TransactionView, error) {
	if _, err := s.Details(ctx, userID); err != nil {
		return nil, err
	}

	txs, total, err := s.txs.ListForUser(ctx, userID, repositories.TransactionListFilter{}, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list user transactions: %w", err)
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

func (s *service) UpdateStatus(ctx context.Context, userID uint, target string) (*StatusChange, error) {
	if !models.IsValidUserStatus(target) {
		return nil, ErrUnknownStatus
	}

	user, err := s.Details(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.CanTransitionTo(target) {
		allowed := user.AllowedStatusTargets()
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %s)",
			ErrIllegalTransition, user.Status, target, strings.Join(allowed, ", "))
	}

	from := user.Status
	if err := s.users.UpdateStatus(userID, target); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	// Suspension invalidates outstanding sessions.
	if target == models.UserStatusSuspended || target == models.UserStatusRejected {
		s.users.IncrementTokenVersion(userID)
	}

	user.Status = target
	return &StatusChange{
		UserID:         userID,
		From:           from,
		To:             target,
		AllowedTargets: user.AllowedStatusTargets(),
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, p *pagination.Pagination) (*ListResult, error) {
	if err := validation.ValidateStruct(filter); err != nil {
		return nil, err
	}

	users, matched, err := s.users.ListFiltered(repositories.UserListFilter{
		Search:         strings.TrimSpace(filter.Search),
		CreatedAtStart: filter.CreatedAtStart,
		CreatedAtEnd:   filter.CreatedAtEnd,
		Role:           filter.Role,
		Status:         filter.Status,
	}, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	p.Total = matched

	return &ListResult{
		Users:        users,
		UsersFetched: len(users),
		UsersMatched: matched,
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, adminID uint) error {
	if userID == adminID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.Details(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
