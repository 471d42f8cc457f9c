package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

// TreasuryRepository manages the single funding-source row.
type TreasuryRepository struct {
	db *sqlx.DB
}

func NewTreasuryRepository(db *sqlx.DB) *TreasuryRepository {
	return &TreasuryRepository{db: db}
}

func (r *TreasuryRepository) Get(ctx context.Context) (*domain.Treasury, error) {
	t := &domain.Treasury{}
	query := `SELECT * FROM payroll.treasury WHERE id = 1`
	if err := r.db.GetContext(ctx, t, query); err != nil {
		return nil, errors.Wrap(err, "failed to read treasury")
	}
	return t, nil
}

func (r *TreasuryRepository) Credit(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error) {
	t := &domain.Treasury{}
	query := `
		UPDATE payroll.treasury
		SET balance = balance + $1, updated_at = now()
		WHERE id = 1
		RETURNING *
	`
	if err := r.db.GetContext(ctx, t, query, amount); err != nil {
		return nil, errors.Wrap(err, "failed to credit treasury")
	}
	return t, nil
}
