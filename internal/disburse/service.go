// Package disburse implements the payment period engine. It pays each
// eligible recipient at most once per period, supports settling a period
// across multiple partial batches, and recomputes the period settlement flag
// from the full roster after every batch.
package disburse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
)

type Service struct {
	store  Store
	pause  PauseState
	logger logger.Logger
	now    func() time.Time
}

func NewService(store Store, pause PauseState, log logger.Logger) *Service {
	return &Service{
		store:  store,
		pause:  pause,
		logger: log,
		now:    time.Now,
	}
}

type ProcessBatchRequest struct {
	PeriodID   int64       `json:"period_id"`
	Candidates []uuid.UUID `json:"candidates"`
	Term       int         `json:"term"`
}

type ProcessBatchResponse struct {
	Payments      []*domain.Payment `json:"payments"`
	PeriodSettled bool              `json:"period_settled"`
}

// ProcessBatch pays every eligible candidate exactly once, then recomputes
// whether the period is fully settled. The whole call runs inside one store
// transaction: a failed transfer aborts the batch and no paid state from this
// call survives. Candidates that are unknown, inactive, or already paid are
// skipped silently so batches stay composable and re-submittable.
func (s *Service) ProcessBatch(ctx context.Context, req *ProcessBatchRequest) (*ProcessBatchResponse, error) {
	paused, err := s.pause.Paused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pause state")
	}
	if paused {
		return nil, errors.ErrSystemPaused
	}

	var (
		emitted []*domain.Payment
		settled bool
	)

	err = s.store.ExecuteBatch(ctx, func(tx BatchTx) error {
		period, err := tx.PeriodForUpdate(ctx, req.PeriodID)
		if err != nil {
			return err
		}
		if period.Paid {
			return errors.ErrPeriodSettled
		}
		if s.now().Before(period.DueAt) {
			return errors.ErrTooEarly
		}

		for _, id := range req.Candidates {
			rec, err := tx.Recipient(ctx, id)
			if err == errors.ErrRecipientNotFound {
				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to look up candidate")
			}
			if !rec.IsActive {
				continue
			}

			paid, err := tx.AlreadyPaid(ctx, req.PeriodID, rec.ID)
			if err != nil {
				return errors.Wrap(err, "failed to read paid state")
			}
			if paid {
				continue
			}

			// The payment row is the paid-bit; writing it before the
			// transfer ties the idempotency guard to the bit, and the
			// surrounding transaction unwinds both on failure.
			p := &domain.Payment{
				ID:          uuid.New(),
				PeriodID:    req.PeriodID,
				RecipientID: rec.ID,
				Amount:      rec.MonthlyAmount,
				Role:        rec.Role,
				Term:        req.Term,
				CreatedAt:   s.now(),
			}
			if err := tx.RecordPayment(ctx, p); err != nil {
				return errors.Wrap(err, "failed to record payment")
			}
			if err := tx.Transfer(ctx, rec.ID, rec.MonthlyAmount); err != nil {
				return fmt.Errorf("%w: %s", errors.ErrTransferFailed, err)
			}
			emitted = append(emitted, p)
		}

		return s.recomputeSettlement(ctx, tx, req.PeriodID, &settled)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Batch processed", map[string]interface{}{
		"period_id":  req.PeriodID,
		"candidates": len(req.Candidates),
		"payments":   len(emitted),
		"settled":    settled,
	})

	return &ProcessBatchResponse{Payments: emitted, PeriodSettled: settled}, nil
}

// recomputeSettlement re-scans the entire roster, not just the batch: a
// period may be settled across several partial batches, and only the call
// that covers the last unpaid active recipient flips the flag. The scan is
// O(roster) per call; callers bound it by submitting targeted batches.
func (s *Service) recomputeSettlement(ctx context.Context, tx BatchTx, periodID int64, settled *bool) error {
	unpaid, err := tx.UnpaidActive(ctx, periodID)
	if err != nil {
		return errors.Wrap(err, "failed to recompute settlement")
	}
	if unpaid > 0 {
		return nil
	}
	if err := tx.SettlePeriod(ctx, periodID, s.now()); err != nil {
		return errors.Wrap(err, "failed to settle period")
	}
	*settled = true
	return nil
}

// Store runs a batch against the ledger with all-or-nothing semantics: if the
// callback returns an error, none of its writes survive.
type Store interface {
	ExecuteBatch(ctx context.Context, fn func(tx BatchTx) error) error
}

// BatchTx exposes the ledger operations available inside one atomic batch.
// Transfer moves funds from the treasury within the same transaction, so a
// rejected transfer also unwinds the paid-bit written before it.
type BatchTx interface {
	PeriodForUpdate(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error)
	Recipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	AlreadyPaid(ctx context.Context, periodID int64, recipientID uuid.UUID) (bool, error)
	RecordPayment(ctx context.Context, p *domain.Payment) error
	Transfer(ctx context.Context, to uuid.UUID, amount decimal.Decimal) error
	UnpaidActive(ctx context.Context, periodID int64) (int, error)
	SettlePeriod(ctx context.Context, periodID int64, at time.Time) error
}

// PauseState is the global admission gate checked once at batch entry.
type PauseState interface {
	Paused(ctx context.Context) (bool, error)
}
