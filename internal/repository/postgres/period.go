package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

type PeriodRepository struct {
	db *sqlx.DB
}

func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

func (r *PeriodRepository) Find(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error) {
	p := &domain.PaymentPeriod{}
	query := `SELECT * FROM payroll.periods WHERE id = $1`
	err := r.db.GetContext(ctx, p, query, periodID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrPeriodNotFound
		}
		return nil, errors.Wrap(err, "failed to find period")
	}
	return p, nil
}

// Upsert never touches the paid or settled_at columns: settlement is owned
// exclusively by the disbursement batch transaction.
func (r *PeriodRepository) Upsert(ctx context.Context, p *domain.PaymentPeriod) error {
	query := `
		INSERT INTO payroll.periods (id, due_at, created_at, updated_at)
		VALUES (:id, :due_at, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			due_at = EXCLUDED.due_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "failed to upsert period")
}
