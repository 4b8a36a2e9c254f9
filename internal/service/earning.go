package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recycle-rewards/internal/model"
	"recycle-rewards/internal/pkg/lock"
	"recycle-rewards/internal/repository"
)

// EarningService credits points for recycling activities. Earnings only
// ever increase a balance, so the only failure modes are an unknown user
// or malformed input.
type EarningService struct {
	ledger   Ledger
	users    UserStore
	userLock *lock.UserLock
}

// NewEarningService creates a new EarningService instance.
func NewEarningService(ledger Ledger, users UserStore, userLock *lock.UserLock) *EarningService {
	return &EarningService{ledger: ledger, users: users, userLock: userLock}
}

// RecordEarning appends a completed earning entry for the given activity
// and bumps the matching activity counter. points is computed by the
// caller from the activity rules (waste weight, quiz score).
func (s *EarningService) RecordEarning(ctx context.Context, userID uuid.UUID, activity string, points int64, details string) (*model.Transaction, error) {
	if activity != model.ActivityScan && activity != model.ActivityQuiz {
		return nil, ErrUnknownActivity
	}
	if points < 0 {
		return nil, ErrInvalidPoints
	}

	s.userLock.Lock(userID)
	defer s.userLock.Unlock(userID)

	entry := &model.Transaction{
		UserID:      userID,
		Kind:        model.KindEarning,
		PointsDelta: points,
		Status:      model.StatusCompleted,
	}
	if details != "" {
		entry.Details = &details
	}

	created, err := s.ledger.Append(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.users.IncrementActivity(ctx, userID, activity); err != nil {
		// The earning itself is recorded; a stale counter is tolerable.
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("activity", activity).
			Msg("Failed to bump activity counter")
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("activity", activity).
		Int64("points", points).
		Msg("Earning recorded")

	return created, nil
}
