package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"recycle-rewards/internal/model"
	"recycle-rewards/internal/repository"
)

// memStore is an in-memory Ledger + UserStore used by the workflow tests.
// It mirrors the persistence contract: Append applies the delta and stores
// the entry as one unit, rejecting negative balances.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[uuid.UUID]*model.User
	byEmail map[string]uuid.UUID
	entries map[uuid.UUID][]*model.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]uuid.UUID),
		entries: make(map[uuid.UUID][]*model.Transaction),
	}
}

func (m *memStore) addUser(balance int64) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.users[id] = &model.User{ID: id, PointsBalance: balance}
	return id
}

func (m *memStore) Create(_ context.Context, name, email, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[email]; taken {
		return nil, repository.ErrEmailTaken
	}
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.byEmail[email] = user.ID
	copied := *user
	return &copied, nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	id, ok := m.byEmail[email]
	m.mu.Unlock()
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return m.GetByID(context.Background(), id)
}

func (m *memStore) IncrementActivity(_ context.Context, id uuid.UUID, activity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	switch activity {
	case model.ActivityScan:
		user.ScanCount++
	case model.ActivityQuiz:
		user.QuizCount++
	}
	return nil
}

func (m *memStore) GetTopByBalance(_ context.Context, limit int) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []*model.User
	for _, u := range m.users {
		copied := *u
		users = append(users, &copied)
	}
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].PointsBalance > users[i].PointsBalance {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (m *memStore) GetBalance(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	return user.PointsBalance, nil
}

func (m *memStore) Append(_ context.Context, entry *model.Transaction) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[entry.UserID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if user.PointsBalance+entry.PointsDelta < 0 {
		return nil, repository.ErrNegativeBalance
	}
	user.PointsBalance += entry.PointsDelta

	m.nextID++
	stored := *entry
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.entries[entry.UserID] = append(m.entries[entry.UserID], &stored)

	copied := stored
	return &copied, nil
}

func (m *memStore) ListByUser(_ context.Context, userID uuid.UUID, kind string, limit int) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.entries[userID]
	var out []*model.Transaction
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		if kind != "" && all[i].Kind != kind {
			continue
		}
		copied := *all[i]
		out = append(out, &copied)
	}
	return out, nil
}
