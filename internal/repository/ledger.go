package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recycle-rewards/internal/model"
)

// LedgerStore persists the append-only transaction ledger together with
// the balance column it drives. Append is the only write path; it updates
// both inside one database transaction so a rejected entry leaves no
// partial state.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore creates a new LedgerStore instance.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

const txColumns = `id, user_id, kind, points_delta, currency_amount, method_id, status, reference, details, created_at`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var tx model.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Kind,
		&tx.PointsDelta,
		&tx.CurrencyAmount,
		&tx.MethodID,
		&tx.Status,
		&tx.Reference,
		&tx.Details,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetBalance returns the user's current points balance.
func (s *LedgerStore) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT points_balance FROM users WHERE id = $1`

	var balance int64
	err := s.pool.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Append inserts a ledger entry and applies its points delta to the owning
// user's balance. Both writes commit together or not at all. An entry that
// would drive the balance negative is rejected with ErrNegativeBalance and
// leaves balance and ledger untouched.
func (s *LedgerStore) Append(ctx context.Context, entry *model.Transaction) (*model.Transaction, error) {
	dbTx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	const updateQuery = `
		UPDATE users
		SET points_balance = points_balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING points_balance
	`

	var newBalance int64
	err = dbTx.QueryRow(ctx, updateQuery, entry.UserID, entry.PointsDelta).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		// The schema carries CHECK (points_balance >= 0) as a backstop.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return nil, ErrNegativeBalance
		}
		return nil, fmt.Errorf("failed to apply points delta: %w", err)
	}
	if newBalance < 0 {
		return nil, ErrNegativeBalance
	}

	const insertQuery = `
		INSERT INTO transactions (user_id, kind, points_delta, currency_amount, method_id, status, reference, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + txColumns

	created, err := scanTransaction(dbTx.QueryRow(ctx, insertQuery,
		entry.UserID,
		entry.Kind,
		entry.PointsDelta,
		entry.CurrencyAmount,
		entry.MethodID,
		entry.Status,
		entry.Reference,
		entry.Details,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// ListByUser retrieves a user's transactions, newest first. Entries created
// in the same instant keep insertion order via the id tiebreak. kind filters
// the listing when non-empty.
func (s *LedgerStore) ListByUser(ctx context.Context, userID uuid.UUID, kind string, limit int) ([]*model.Transaction, error) {
	const baseQuery = `
		SELECT ` + txColumns + `
		FROM transactions
		WHERE user_id = $1
	`
	const orderClause = ` ORDER BY created_at DESC, id DESC LIMIT `

	var (
		rows pgx.Rows
		err  error
	)
	if kind == "" {
		rows, err = s.pool.Query(ctx, baseQuery+orderClause+`$2`, userID, limit)
	} else {
		rows, err = s.pool.Query(ctx, baseQuery+` AND kind = $2`+orderClause+`$3`, userID, kind, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// SumCompletedDeltas returns the sum of points deltas over a user's
// completed transactions. Used by tests and consistency checks; it must
// always equal the balance column.
func (s *LedgerStore) SumCompletedDeltas(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(points_delta), 0)
		FROM transactions
		WHERE user_id = $1 AND status = $2
	`

	var sum int64
	if err := s.pool.QueryRow(ctx, query, userID, model.StatusCompleted).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum deltas: %w", err)
	}
	return sum, nil
}
