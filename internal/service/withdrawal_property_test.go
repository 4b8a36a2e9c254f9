package service

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"recycle-rewards/internal/catalog"
	"recycle-rewards/internal/pkg/lock"
	"recycle-rewards/internal/policy"
)

// TestWithdrawalOutcomeProperty runs the real workflow against the
// in-memory store for arbitrary balances and amounts and checks that the
// outcome is fully determined by the validation rules, and that a failed
// request never moves the balance.
func TestWithdrawalOutcomeProperty(t *testing.T) {
	methods := catalog.Methods()

	rapid.Check(t, func(t *rapid.T) {
		balance := rapid.Int64Range(0, 3_000_000).Draw(t, "balance")
		amount := rapid.Int64Range(1, 600_000).Draw(t, "amount")
		method := methods[rapid.IntRange(0, len(methods)-1).Draw(t, "method")]

		store := newMemStore()
		userID := store.addUser(balance)
		svc := NewWithdrawalService(store, lock.NewUserLock())

		pointsNeeded := amount * policy.PointsPerUnit
		_, err := svc.RequestWithdrawal(context.Background(), userID, amount, method.ID, "691234567")

		switch {
		case amount < method.MinAmount || amount > method.MaxAmount:
			if !errors.Is(err, ErrAmountOutOfRange) {
				t.Fatalf("amount %d outside [%d, %d] of %s: got %v, want ErrAmountOutOfRange",
					amount, method.MinAmount, method.MaxAmount, method.ID, err)
			}
		case pointsNeeded > balance:
			if !errors.Is(err, ErrInsufficientBalance) {
				t.Fatalf("needed %d > balance %d: got %v, want ErrInsufficientBalance",
					pointsNeeded, balance, err)
			}
		default:
			if err != nil {
				t.Fatalf("valid withdrawal failed: balance=%d amount=%d method=%s: %v",
					balance, amount, method.ID, err)
			}
		}

		after, getErr := store.GetBalance(context.Background(), userID)
		if getErr != nil {
			t.Fatalf("GetBalance failed: %v", getErr)
		}
		if err != nil && after != balance {
			t.Fatalf("failed withdrawal moved balance: %d -> %d", balance, after)
		}
		if err == nil && after != balance-pointsNeeded {
			t.Fatalf("balance after success: got %d, want %d", after, balance-pointsNeeded)
		}
		if after < 0 {
			t.Fatalf("balance went negative: %d", after)
		}
	})
}

// TestWithdrawalFeeNetProperty checks that on every successful withdrawal
// the reported fee and net sum to the requested amount and the fee matches
// the method's rate.
func TestWithdrawalFeeNetProperty(t *testing.T) {
	methods := catalog.Methods()

	rapid.Check(t, func(t *rapid.T) {
		method := methods[rapid.IntRange(0, len(methods)-1).Draw(t, "method")]
		amount := rapid.Int64Range(method.MinAmount, method.MaxAmount).Draw(t, "amount")

		store := newMemStore()
		userID := store.addUser(amount * policy.PointsPerUnit)
		svc := NewWithdrawalService(store, lock.NewUserLock())

		result, err := svc.RequestWithdrawal(context.Background(), userID, amount, method.ID, "691234567")
		if err != nil {
			t.Fatalf("withdrawal failed: amount=%d method=%s: %v", amount, method.ID, err)
		}

		if diff := result.Fee + result.Net - float64(amount); diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("fee %f + net %f != amount %d", result.Fee, result.Net, amount)
		}
		wantFee := float64(amount) * method.FeePercent / 100
		if diff := result.Fee - wantFee; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("fee mismatch: got %f, want %f", result.Fee, wantFee)
		}
	})
}
