package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"stipend/internal/disburse"
	"stipend/internal/domain"
	"stipend/pkg/errors"
)

// BatchStore runs disbursement batches inside a single database transaction,
// which is what gives the engine its all-or-nothing semantics: a failed
// transfer rolls back every paid-bit and payment written earlier in the same
// call.
type BatchStore struct {
	db *sqlx.DB
}

func NewBatchStore(db *sqlx.DB) *BatchStore {
	return &BatchStore{db: db}
}

func (s *BatchStore) ExecuteBatch(ctx context.Context, fn func(tx disburse.BatchTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin batch transaction")
	}

	if err := fn(&batchTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "failed to commit batch")
}

type batchTx struct {
	tx *sqlx.Tx
}

// PeriodForUpdate locks the period row for the duration of the batch, which
// serializes concurrent batches targeting the same period.
func (b *batchTx) PeriodForUpdate(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error) {
	p := &domain.PaymentPeriod{}
	query := `SELECT * FROM payroll.periods WHERE id = $1 FOR UPDATE`
	err := b.tx.GetContext(ctx, p, query, periodID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrPeriodNotFound
		}
		return nil, errors.Wrap(err, "failed to lock period")
	}
	return p, nil
}

func (b *batchTx) Recipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	rec := &domain.Recipient{}
	query := `SELECT * FROM payroll.recipients WHERE id = $1`
	err := b.tx.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrRecipientNotFound
		}
		return nil, errors.Wrap(err, "failed to find recipient")
	}
	return rec, nil
}

func (b *batchTx) AlreadyPaid(ctx context.Context, periodID int64, recipientID uuid.UUID) (bool, error) {
	var paid bool
	query := `SELECT EXISTS (
		SELECT 1 FROM payroll.payments WHERE period_id = $1 AND recipient_id = $2
	)`
	if err := b.tx.GetContext(ctx, &paid, query, periodID, recipientID); err != nil {
		return false, errors.Wrap(err, "failed to read paid state")
	}
	return paid, nil
}

func (b *batchTx) RecordPayment(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payroll.payments (
			id, period_id, recipient_id, amount, role, term, created_at
		) VALUES (
			:id, :period_id, :recipient_id, :amount, :role, :term, :created_at
		)
	`
	_, err := b.tx.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "failed to insert payment")
}

// Transfer moves funds from the treasury to the recipient's payout balance.
// The conditional debit enforces the funding invariant: if the treasury
// cannot cover the amount, no row changes and the batch aborts.
func (b *batchTx) Transfer(ctx context.Context, to uuid.UUID, amount decimal.Decimal) error {
	res, err := b.tx.ExecContext(ctx, `
		UPDATE payroll.treasury
		SET balance = balance - $1, updated_at = now()
		WHERE id = 1 AND balance >= $1
	`, amount)
	if err != nil {
		return errors.Wrap(err, "failed to debit treasury")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to debit treasury")
	}
	if rows == 0 {
		return errors.ErrInsufficientFunds
	}

	_, err = b.tx.ExecContext(ctx, `
		UPDATE payroll.recipients
		SET payout_balance = payout_balance + $1, updated_at = now()
		WHERE id = $2
	`, amount, to)
	return errors.Wrap(err, "failed to credit recipient")
}

func (b *batchTx) UnpaidActive(ctx context.Context, periodID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM payroll.recipients r
		WHERE r.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM payroll.payments p
			WHERE p.period_id = $1 AND p.recipient_id = r.id
		  )
	`
	if err := b.tx.GetContext(ctx, &count, query, periodID); err != nil {
		return 0, errors.Wrap(err, "failed to count unpaid recipients")
	}
	return count, nil
}

func (b *batchTx) SettlePeriod(ctx context.Context, periodID int64, at time.Time) error {
	// paid is monotonic: the guard makes re-settling a no-op.
	_, err := b.tx.ExecContext(ctx, `
		UPDATE payroll.periods
		SET paid = TRUE, settled_at = $2, updated_at = $2
		WHERE id = $1 AND NOT paid
	`, periodID, at)
	return errors.Wrap(err, "failed to settle period")
}
