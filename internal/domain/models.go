// Package domain defines the core payroll entities shared across services.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipient is an entity eligible to receive the periodic stipend. Removal is
// a soft delete: the record stays queryable, only IsActive flips. Re-adding a
// removed recipient reactivates the same record and keeps its original roster
// position.
type Recipient struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount" db:"monthly_amount"`
	Role           string          `json:"role" db:"role"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	PayoutBalance  decimal.Decimal `json:"payout_balance" db:"payout_balance"`
	RosterPosition int64           `json:"-" db:"roster_position"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// PaymentPeriod is one disbursement cycle. Paid flips false->true exactly
// once, when every then-active recipient holds a payment for the period, and
// is never reset.
type PaymentPeriod struct {
	ID        int64      `json:"id" db:"id"`
	DueAt     time.Time  `json:"due_at" db:"due_at"`
	Paid      bool       `json:"paid" db:"paid"`
	SettledAt *time.Time `json:"settled_at,omitempty" db:"settled_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Payment records one stipend disbursement. The UNIQUE(period_id,
// recipient_id) constraint on its table is the per-recipient paid-bit: a row
// exists exactly when the recipient has been paid for the period.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	PeriodID    int64           `json:"period_id" db:"period_id"`
	RecipientID uuid.UUID       `json:"recipient_id" db:"recipient_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Role        string          `json:"role" db:"role"`
	Term        int             `json:"term" db:"term"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Treasury is the single funding source all stipends draw from.
type Treasury struct {
	ID        int16           `json:"id" db:"id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// RecipientSummary is the roster projection returned by the active list.
type RecipientSummary struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" db:"monthly_amount"`
	Role          string          `json:"role" db:"role"`
}

// HistoryEntry reports one configured period from a recipient's point of
// view. Amount is the recipient's current configured stipend, not the amount
// paid at the time; Paid is the recipient's paid-bit for the period, not the
// period's settlement flag.
type HistoryEntry struct {
	PeriodID int64           `json:"period_id" db:"period_id"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	DueAt    time.Time       `json:"due_at" db:"due_at"`
	Paid     bool            `json:"paid" db:"paid"`
}
