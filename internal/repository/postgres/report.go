package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

// ReportRepository serves the read-only projections. It spans the recipient,
// period, and payment tables but never writes any of them.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ActiveRecipients(ctx context.Context) ([]*domain.RecipientSummary, error) {
	var out []*domain.RecipientSummary
	query := `
		SELECT id, monthly_amount, role
		FROM payroll.recipients
		WHERE is_active
		ORDER BY roster_position ASC
	`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, errors.Wrap(err, "failed to list active recipients")
	}
	return out, nil
}

func (r *ReportRepository) Recipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	rec := &domain.Recipient{}
	query := `SELECT * FROM payroll.recipients WHERE id = $1`
	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrRecipientNotFound
		}
		return nil, errors.Wrap(err, "failed to find recipient")
	}
	return rec, nil
}

func (r *ReportRepository) Periods(ctx context.Context, limit int) ([]*domain.PaymentPeriod, error) {
	var out []*domain.PaymentPeriod
	query := `SELECT * FROM payroll.periods ORDER BY id ASC LIMIT $1`
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, errors.Wrap(err, "failed to list periods")
	}
	return out, nil
}

func (r *ReportRepository) PaidPeriods(ctx context.Context, recipientID uuid.UUID) (map[int64]bool, error) {
	var ids []int64
	query := `SELECT period_id FROM payroll.payments WHERE recipient_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, recipientID); err != nil {
		return nil, errors.Wrap(err, "failed to list paid periods")
	}
	paid := make(map[int64]bool, len(ids))
	for _, id := range ids {
		paid[id] = true
	}
	return paid, nil
}
