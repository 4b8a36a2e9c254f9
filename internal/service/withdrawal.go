package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recycle-rewards/internal/catalog"
	"recycle-rewards/internal/model"
	"recycle-rewards/internal/pkg/lock"
	"recycle-rewards/internal/policy"
	"recycle-rewards/internal/repository"
)

// WithdrawalResult is returned to the caller on a successful withdrawal:
// the recorded transaction plus the fee breakdown for display.
type WithdrawalResult struct {
	Transaction *model.Transaction `json:"transaction"`
	Fee         float64            `json:"fee"`
	Net         float64            `json:"net"`
}

// lockTimeout bounds how long a withdrawal waits for the user's lock
// before giving up with lock.ErrLockTimeout.
const lockTimeout = 5 * time.Second

// WithdrawalService converts points into currency payouts.
type WithdrawalService struct {
	ledger   Ledger
	userLock *lock.UserLock
}

// NewWithdrawalService creates a new WithdrawalService instance.
func NewWithdrawalService(ledger Ledger, userLock *lock.UserLock) *WithdrawalService {
	return &WithdrawalService{ledger: ledger, userLock: userLock}
}

// RequestWithdrawal validates and executes a withdrawal. Validation fails
// fast in a fixed order: method, amount range, balance. The balance check
// and the ledger append run under the user's lock, so two requests for the
// same user cannot both pass the check; the append's own invariant is kept
// as a backstop and reported as an insufficient balance.
//
// contact is the payout destination (phone number or card token), already
// format-checked by the caller; it is stored verbatim in the entry details.
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount int64, methodID, contact string) (*WithdrawalResult, error) {
	method, ok := catalog.Method(methodID)
	if !ok {
		return nil, ErrUnknownMethod
	}

	if amount < method.MinAmount || amount > method.MaxAmount {
		return nil, ErrAmountOutOfRange
	}

	pointsNeeded, err := policy.CurrencyToPoints(amount)
	if err != nil {
		return nil, ErrAmountOutOfRange
	}

	fee, err := policy.Fee(amount, method.FeePercent)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fee: %w", err)
	}
	net, err := policy.Net(amount, method.FeePercent)
	if err != nil {
		return nil, fmt.Errorf("failed to compute net amount: %w", err)
	}

	var result *WithdrawalResult
	err = s.userLock.WithLockContext(ctx, userID, lockTimeout, func() error {
		balance, err := s.ledger.GetBalance(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if pointsNeeded > balance {
			return ErrInsufficientBalance
		}

		reference := newReference(method.Name)
		details := contact
		created, err := s.ledger.Append(ctx, &model.Transaction{
			UserID:         userID,
			Kind:           model.KindWithdrawal,
			PointsDelta:    -pointsNeeded,
			CurrencyAmount: amount,
			MethodID:       &method.ID,
			Status:         model.StatusCompleted,
			Reference:      &reference,
			Details:        &details,
		})
		if err != nil {
			// A concurrent deduction between the balance read and the append
			// trips the store's invariant; report it like any other shortfall.
			if errors.Is(err, repository.ErrNegativeBalance) {
				return ErrInsufficientBalance
			}
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		log.Info().
			Str("user_id", userID.String()).
			Str("method", method.ID).
			Int64("amount", amount).
			Int64("points", pointsNeeded).
			Str("reference", reference).
			Msg("Withdrawal completed")

		result = &WithdrawalResult{Transaction: created, Fee: fee, Net: net}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// newReference builds a payout reference in the historical format: the
// first two letters of the method name, a dash, five random digits.
func newReference(methodName string) string {
	prefix := methodName
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s-%05d", strings.ToUpper(prefix), rand.IntN(100000))
}
