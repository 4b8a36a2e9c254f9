package service

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycle-rewards/internal/catalog"
	"recycle-rewards/internal/model"
	"recycle-rewards/internal/pkg/lock"
)

func newWithdrawalService(store *memStore) *WithdrawalService {
	return NewWithdrawalService(store, lock.NewUserLock())
}

func TestRequestWithdrawal_Success(t *testing.T) {
	store := newMemStore()
	// 2900 points = 580 XAF available.
	userID := store.addUser(2900)
	svc := newWithdrawalService(store)

	result, err := svc.RequestWithdrawal(context.Background(), userID, 500, catalog.MethodMTN, "691234567")
	require.NoError(t, err)

	// 500 XAF costs 2500 points; MTN takes 1.5%.
	assert.Equal(t, int64(-2500), result.Transaction.PointsDelta)
	assert.Equal(t, int64(500), result.Transaction.CurrencyAmount)
	assert.Equal(t, model.StatusCompleted, result.Transaction.Status)
	assert.InDelta(t, 7.5, result.Fee, 1e-9)
	assert.InDelta(t, 492.5, result.Net, 1e-9)

	balance, err := store.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)

	require.NotNil(t, result.Transaction.Reference)
	assert.Regexp(t, regexp.MustCompile(`^MT-\d{5}$`), *result.Transaction.Reference)
	require.NotNil(t, result.Transaction.MethodID)
	assert.Equal(t, catalog.MethodMTN, *result.Transaction.MethodID)
}

func TestRequestWithdrawal_ContextCanceled(t *testing.T) {
	store := newMemStore()
	userID := store.addUser(5000)
	svc := newWithdrawalService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RequestWithdrawal(ctx, userID, 500, catalog.MethodMTN, "691234567")
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing was deducted or recorded.
	balance, err := store.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance)
	list, _ := store.ListByUser(context.Background(), userID, "", 10)
	assert.Empty(t, list)
}

func TestRequestWithdrawal_UnknownMethod(t *testing.T) {
	store := newMemStore()
	userID := store.addUser(10_000)
	svc := newWithdrawalService(store)

	_, err := svc.RequestWithdrawal(context.Background(), userID, 500, "wm9", "691234567")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	// Nothing was recorded.
	list, _ := store.ListByUser(context.Background(), userID, "", 10)
	assert.Empty(t, list)
}

func TestRequestWithdrawal_AmountOutOfRange(t *testing.T) {
	store := newMemStore()
	userID := store.addUser(10_000_000)
	svc := newWithdrawalService(store)
	ctx := context.Background()

	_, err := svc.RequestWithdrawal(ctx, userID, 499, catalog.MethodMTN, "691234567")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = svc.RequestWithdrawal(ctx, userID, 100_001, catalog.MethodMTN, "691234567")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	// The card method has wider limits; the same amount passes there.
	_, err = svc.RequestWithdrawal(ctx, userID, 100_001, catalog.MethodCard, "tok_4242")
	assert.NoError(t, err)
}

func TestRequestWithdrawal_InsufficientBalance(t *testing.T) {
	store := newMemStore()
	userID := store.addUser(2400)
	svc := newWithdrawalService(store)

	// 500 XAF needs 2500 points, only 2400 available.
	_, err := svc.RequestWithdrawal(context.Background(), userID, 500, catalog.MethodOrange, "699876543")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, _ := store.GetBalance(context.Background(), userID)
	assert.Equal(t, int64(2400), balance)
}

func TestRequestWithdrawal_UnknownUser(t *testing.T) {
	store := newMemStore()
	svc := newWithdrawalService(store)

	_, err := svc.RequestWithdrawal(context.Background(), uuid.New(), 500, catalog.MethodMTN, "691234567")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestWithdrawal_ValidationOrder(t *testing.T) {
	store := newMemStore()
	userID := store.addUser(0)
	svc := newWithdrawalService(store)
	ctx := context.Background()

	// Unknown method wins over a bad amount.
	_, err := svc.RequestWithdrawal(ctx, userID, 1, "nope", "691234567")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	// Range check runs before the balance check.
	_, err = svc.RequestWithdrawal(ctx, userID, 1, catalog.MethodMTN, "691234567")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

// TestRequestWithdrawal_ConcurrentSameUser issues more withdrawals than the
// balance covers. The per-user lock serializes them: exactly the ones that
// fit succeed and the final balance reflects only those.
func TestRequestWithdrawal_ConcurrentSameUser(t *testing.T) {
	store := newMemStore()
	// 7500 points = 1500 XAF; each request takes 500 XAF, so 3 fit.
	userID := store.addUser(7500)
	svc := newWithdrawalService(store)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RequestWithdrawal(context.Background(), userID, 500, catalog.MethodMTN, "691234567")
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case err == ErrInsufficientBalance:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, attempts-3, insufficient)

	balance, _ := store.GetBalance(context.Background(), userID)
	assert.Zero(t, balance)
}
