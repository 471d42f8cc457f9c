// Package report provides read-only projections over the roster and the
// period ledger. Nothing in this package mutates state.
package report

import (
	"context"

	"github.com/google/uuid"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

type Service struct {
	repo      Repository
	scanLimit int
}

func NewService(repo Repository, scanLimit int) *Service {
	return &Service{
		repo:      repo,
		scanLimit: scanLimit,
	}
}

// ActiveRecipients returns a snapshot of the currently active roster in
// insertion order.
func (s *Service) ActiveRecipients(ctx context.Context) ([]*domain.RecipientSummary, error) {
	return s.repo.ActiveRecipients(ctx)
}

// PaymentHistory enumerates every configured period (up to the configured
// scan bound) from the recipient's point of view. The reported amount is the
// recipient's current configured stipend, not the amount paid at the time;
// exact historical amounts live on the payment records themselves.
func (s *Service) PaymentHistory(ctx context.Context, recipientID uuid.UUID) ([]*domain.HistoryEntry, error) {
	rec, err := s.repo.Recipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	periods, err := s.repo.Periods(ctx, s.scanLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate periods")
	}
	paid, err := s.repo.PaidPeriods(ctx, recipientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read paid periods")
	}

	entries := make([]*domain.HistoryEntry, 0, len(periods))
	for _, p := range periods {
		entries = append(entries, &domain.HistoryEntry{
			PeriodID: p.ID,
			Amount:   rec.MonthlyAmount,
			DueAt:    p.DueAt,
			Paid:     paid[p.ID],
		})
	}
	return entries, nil
}

type Repository interface {
	ActiveRecipients(ctx context.Context) ([]*domain.RecipientSummary, error)
	Recipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	Periods(ctx context.Context, limit int) ([]*domain.PaymentPeriod, error)
	PaidPeriods(ctx context.Context, recipientID uuid.UUID) (map[int64]bool, error)
}
