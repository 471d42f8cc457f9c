package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

type RecipientRepository struct {
	db *sqlx.DB
}

func NewRecipientRepository(db *sqlx.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

func (r *RecipientRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
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

// Upsert activates a recipient. On first insert the row receives its roster
// position from the sequence; on re-add the original position, payout balance
// and created_at are preserved so roster order stays stable.
func (r *RecipientRepository) Upsert(ctx context.Context, rec *domain.Recipient) error {
	query := `
		INSERT INTO payroll.recipients (
			id, monthly_amount, role, is_active, payout_balance, created_at, updated_at
		) VALUES (
			:id, :monthly_amount, :role, TRUE, :payout_balance, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			monthly_amount = EXCLUDED.monthly_amount,
			role = EXCLUDED.role,
			is_active = TRUE,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return errors.Wrap(err, "failed to upsert recipient")
}

func (r *RecipientRepository) Update(ctx context.Context, rec *domain.Recipient) error {
	query := `
		UPDATE payroll.recipients SET
			monthly_amount = :monthly_amount,
			role = :role,
			updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return errors.Wrap(err, "failed to update recipient")
}

func (r *RecipientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE payroll.recipients SET is_active = FALSE, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return errors.Wrap(err, "failed to deactivate recipient")
}
