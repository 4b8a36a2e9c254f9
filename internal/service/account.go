package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"recycle-rewards/internal/auth"
	"recycle-rewards/internal/model"
	"recycle-rewards/internal/repository"
)

// AccountService handles registration, login and account reads.
type AccountService struct {
	users  UserStore
	ledger Ledger
	tokens *auth.Manager
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(users UserStore, ledger Ledger, tokens *auth.Manager) *AccountService {
	return &AccountService{users: users, ledger: ledger, tokens: tokens}
}

// Register creates a new account with a hashed password and zero balance.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.Create(ctx, name, email, hash)
}

// Login verifies credentials and issues a token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// GetUser retrieves a user's profile.
func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetBalance retrieves a user's current points balance.
func (s *AccountService) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	balance, err := s.ledger.GetBalance(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

// ListTransactions retrieves a user's ledger history, newest first,
// optionally filtered by kind.
func (s *AccountService) ListTransactions(ctx context.Context, id uuid.UUID, kind string, limit int) ([]*model.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.ledger.ListByUser(ctx, id, kind, limit)
}
