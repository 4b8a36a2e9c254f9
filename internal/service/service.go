// Package service implements the business workflows over the ledger:
// earning points for activities, withdrawing them as currency, account
// management and rankings.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"recycle-rewards/internal/model"
)

// Workflow errors. Each maps to exactly one failure mode reported to the
// caller.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnknownMethod       = errors.New("unknown withdrawal method")
	ErrAmountOutOfRange    = errors.New("amount outside method limits")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrInvalidPoints       = errors.New("invalid points amount")
	ErrUnknownActivity     = errors.New("unknown activity kind")
)

// Ledger is the store the workflows append to. Append must apply the
// points delta and insert the entry atomically, rejecting any delta that
// would drive the balance negative.
type Ledger interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	Append(ctx context.Context, entry *model.Transaction) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, kind string, limit int) ([]*model.Transaction, error)
}

// UserStore is the account persistence the workflows read and update.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	IncrementActivity(ctx context.Context, id uuid.UUID, activity string) error
	GetTopByBalance(ctx context.Context, limit int) ([]*model.User, error)
}
