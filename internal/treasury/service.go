// Package treasury manages the funding source all stipends draw from.
package treasury

import (
	"context"

	"github.com/shopspring/decimal"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
)

type Service struct {
	repo   Repository
	logger logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Allowance reports the funding balance still available for disbursement.
func (s *Service) Allowance(ctx context.Context) (*domain.Treasury, error) {
	return s.repo.Get(ctx)
}

// Fund credits the treasury. Amounts follow the same whole-unit rule as
// stipends.
func (s *Service) Fund(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error) {
	if !amount.IsPositive() || !amount.IsInteger() {
		return nil, errors.ErrInvalidAmount
	}

	t, err := s.repo.Credit(ctx, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to credit treasury")
	}

	s.logger.Info("Treasury funded", map[string]interface{}{
		"amount":  amount.String(),
		"balance": t.Balance.String(),
	})

	return t, nil
}

type Repository interface {
	Get(ctx context.Context) (*domain.Treasury, error)
	Credit(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error)
}
