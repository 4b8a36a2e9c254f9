// Package model defines the data models for the recycling rewards service.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered app user and their points balance.
type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	PointsBalance int64     `db:"points_balance" json:"points_balance"`
	ScanCount     int       `db:"scan_count" json:"scan_count"`
	QuizCount     int       `db:"quiz_count" json:"quiz_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is a single entry in the points ledger. Rows are append-only;
// after creation only Status may change, and only Pending -> Completed or
// Pending -> Failed.
type Transaction struct {
	ID             int64     `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Kind           string    `db:"kind" json:"kind"`
	PointsDelta    int64     `db:"points_delta" json:"points_delta"`
	CurrencyAmount int64     `db:"currency_amount" json:"currency_amount"`
	MethodID       *string   `db:"method_id" json:"method_id,omitempty"`
	Status         string    `db:"status" json:"status"`
	Reference      *string   `db:"reference" json:"reference,omitempty"`
	Details        *string   `db:"details" json:"details,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Transaction kinds.
const (
	KindEarning    = "earning"
	KindWithdrawal = "withdrawal"
)

// Transaction statuses. Both workflows currently create rows already
// completed; pending/failed exist so a real payment gateway can be added
// without a schema change.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Earning activities.
const (
	ActivityScan = "scan"
	ActivityQuiz = "quiz"
)

// WithdrawalMethod is a payout channel. Static reference data, immutable
// at runtime.
type WithdrawalMethod struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MinAmount      int64   `json:"min_amount"`
	MaxAmount      int64   `json:"max_amount"`
	FeePercent     float64 `json:"fee_percent"`
	ProcessingTime string  `json:"processing_time"`
	RequiresPhone  bool    `json:"requires_phone"`
}

// WasteType describes a scannable waste category and its reward rate.
type WasteType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	RecyclingInfo string `json:"recycling_info"`
	PointsPerKg   int64  `json:"points_per_kg"`
}
