// Package registry owns the stipend recipient roster.
package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
	"stipend/pkg/validator"
)

type Service struct {
	repo      Repository
	amountCap decimal.Decimal
	logger    logger.Logger
}

func NewService(repo Repository, amountCap decimal.Decimal, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		amountCap: amountCap,
		logger:    log,
	}
}

type AddRecipientRequest struct {
	ID     uuid.UUID       `json:"id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Role   string          `json:"role" validate:"max=128"`
}

// AddRecipient activates a recipient. Re-adding a previously removed
// recipient reactivates the existing record; its roster position is kept.
func (s *Service) AddRecipient(ctx context.Context, req *AddRecipientRequest) (*domain.Recipient, error) {
	if req.ID == uuid.Nil {
		return nil, errors.ErrInvalidIdentifier
	}
	if !s.amountAllowed(req.Amount) {
		return nil, errors.ErrInvalidAmount
	}

	existing, err := s.repo.Find(ctx, req.ID)
	if err != nil && err != errors.ErrRecipientNotFound {
		return nil, errors.Wrap(err, "failed to look up recipient")
	}
	if existing != nil && existing.IsActive {
		return nil, errors.ErrAlreadyActive
	}

	now := time.Now()
	rec := &domain.Recipient{
		ID:            req.ID,
		MonthlyAmount: req.Amount,
		Role:          validator.Sanitize(req.Role),
		IsActive:      true,
		PayoutBalance: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing != nil {
		rec.PayoutBalance = existing.PayoutBalance
		rec.RosterPosition = existing.RosterPosition
		rec.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, errors.Wrap(err, "failed to store recipient")
	}

	s.logger.Info("Recipient added", map[string]interface{}{
		"recipient_id": rec.ID,
		"amount":       rec.MonthlyAmount.String(),
		"role":         rec.Role,
		"readded":      existing != nil,
	})

	return rec, nil
}

type UpdateRecipientRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Role   string          `json:"role" validate:"max=128"`
}

// UpdateRecipient changes the stipend amount and role of an active recipient.
func (s *Service) UpdateRecipient(ctx context.Context, id uuid.UUID, req *UpdateRecipientRequest) (*domain.Recipient, error) {
	rec, err := s.activeRecipient(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.amountAllowed(req.Amount) {
		return nil, errors.ErrInvalidAmount
	}

	rec.MonthlyAmount = req.Amount
	rec.Role = validator.Sanitize(req.Role)
	rec.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, errors.Wrap(err, "failed to update recipient")
	}

	s.logger.Info("Recipient updated", map[string]interface{}{
		"recipient_id": rec.ID,
		"amount":       rec.MonthlyAmount.String(),
		"role":         rec.Role,
	})

	return rec, nil
}

// RemoveRecipient deactivates a recipient. The record and its payment history
// stay queryable; only future payments stop.
func (s *Service) RemoveRecipient(ctx context.Context, id uuid.UUID) error {
	rec, err := s.activeRecipient(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, rec.ID); err != nil {
		return errors.Wrap(err, "failed to deactivate recipient")
	}

	s.logger.Info("Recipient removed", map[string]interface{}{
		"recipient_id": rec.ID,
	})

	return nil
}

func (s *Service) GetRecipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) activeRecipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	rec, err := s.repo.Find(ctx, id)
	if err == errors.ErrRecipientNotFound {
		return nil, errors.ErrNotActive
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up recipient")
	}
	if !rec.IsActive {
		return nil, errors.ErrNotActive
	}
	return rec, nil
}

// amountAllowed enforces the stipend bounds: a positive whole number of
// settlement units, no larger than the configured cap.
func (s *Service) amountAllowed(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.IsInteger() && amount.LessThanOrEqual(s.amountCap)
}

type Repository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	Upsert(ctx context.Context, rec *domain.Recipient) error
	Update(ctx context.Context, rec *domain.Recipient) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
