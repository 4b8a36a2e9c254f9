package service

import (
	"context"

	"recycle-rewards/internal/model"
)

// RankingService exposes the community leaderboard.
type RankingService struct {
	users UserStore
}

// NewRankingService creates a new RankingService instance.
func NewRankingService(users UserStore) *RankingService {
	return &RankingService{users: users}
}

// TopRecyclers returns the highest point balances, best first.
func (s *RankingService) TopRecyclers(ctx context.Context, limit int) ([]*model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.users.GetTopByBalance(ctx, limit)
}
