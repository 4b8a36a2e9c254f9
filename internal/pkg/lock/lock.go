// Package lock provides per-user locking. Balance mutations for one user
// must be serialized to uphold the non-negative balance invariant;
// operations on different users proceed independently.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// userMutex wraps a mutex with reference counting so idle entries can be
// reclaimed later if needed.
type userMutex struct {
	mu       sync.Mutex
	refCount int
}

// UserLock hands out one mutex per user ID. The instance is injected into
// every workflow that mutates a balance; there is deliberately no package
// level default.
type UserLock struct {
	locks sync.Map // map[uuid.UUID]*userMutex
	pool  sync.Pool
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{
		pool: sync.Pool{
			New: func() any {
				return &userMutex{}
			},
		},
	}
}

// getLock retrieves or creates the mutex for a user.
func (ul *UserLock) getLock(userID uuid.UUID) *userMutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*userMutex)
	}

	newLock := ul.pool.Get().(*userMutex)
	newLock.refCount = 0

	actual, loaded := ul.locks.LoadOrStore(userID, newLock)
	if loaded {
		// Another goroutine won the race; recycle ours.
		ul.pool.Put(newLock)
	}
	return actual.(*userMutex)
}

// Lock acquires the lock for a user. Call before any balance-modifying
// operation.
func (ul *UserLock) Lock(userID uuid.UUID) {
	lock := ul.getLock(userID)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a user.
func (ul *UserLock) Unlock(userID uuid.UUID) {
	if v, ok := ul.locks.Load(userID); ok {
		lock := v.(*userMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (ul *UserLock) TryLock(userID uuid.UUID) bool {
	lock := ul.getLock(userID)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// LockWithTimeout attempts to acquire the lock, giving up after timeout.
func (ul *UserLock) LockWithTimeout(ctx context.Context, userID uuid.UUID, timeout time.Duration) bool {
	lock := ul.getLock(userID)

	done := make(chan struct{})
	go func() {
		lock.mu.Lock()
		close(done)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-done:
		lock.refCount++
		return true
	case <-timeoutCtx.Done():
		// The acquiring goroutine will eventually get the mutex; release
		// it as soon as it does.
		go func() {
			<-done
			lock.mu.Unlock()
		}()
		return false
	}
}

// WithLock runs fn while holding the user's lock.
func (ul *UserLock) WithLock(userID uuid.UUID, fn func() error) error {
	ul.Lock(userID)
	defer ul.Unlock(userID)
	return fn()
}

// WithLockContext runs fn while holding the user's lock, honoring context
// cancellation and a lock acquisition timeout.
func (ul *UserLock) WithLockContext(ctx context.Context, userID uuid.UUID, timeout time.Duration, fn func() error) error {
	if !ul.LockWithTimeout(ctx, userID, timeout) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrLockTimeout
	}
	defer ul.Unlock(userID)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fn()
	}
}
