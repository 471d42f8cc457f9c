// Package period owns the payment period schedule.
package period

import (
	"context"
	"time"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
)

type Service struct {
	repo   Repository
	logger logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// SetPeriod creates a period or reschedules an unsettled one. The due time
// must be strictly in the future; a settled period can never be reconfigured.
func (s *Service) SetPeriod(ctx context.Context, periodID int64, dueAt time.Time) (*domain.PaymentPeriod, error) {
	if !dueAt.After(s.now()) {
		return nil, errors.ErrNotFuture
	}

	existing, err := s.repo.Find(ctx, periodID)
	if err != nil && err != errors.ErrPeriodNotFound {
		return nil, errors.Wrap(err, "failed to look up period")
	}
	if existing != nil && existing.Paid {
		return nil, errors.ErrAlreadySettled
	}

	now := s.now()
	p := &domain.PaymentPeriod{
		ID:        periodID,
		DueAt:     dueAt,
		Paid:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, errors.Wrap(err, "failed to store period")
	}

	s.logger.Info("Period configured", map[string]interface{}{
		"period_id":   periodID,
		"due_at":      dueAt.UTC().Format(time.RFC3339),
		"rescheduled": existing != nil,
	})

	return p, nil
}

func (s *Service) GetPeriod(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error) {
	return s.repo.Find(ctx, periodID)
}

type Repository interface {
	Find(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error)
	Upsert(ctx context.Context, p *domain.PaymentPeriod) error
}
