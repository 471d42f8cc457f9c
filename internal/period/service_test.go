package period

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Find(ctx context.Context, periodID int64) (*domain.PaymentPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPeriod), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, p *domain.PaymentPeriod) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestSetPeriod(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, logger.NewNop())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }

	due := base.Add(24 * time.Hour)
	mockRepo.On("Find", ctx, int64(1)).Return(nil, errors.ErrPeriodNotFound)
	mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.PaymentPeriod")).Return(nil)

	p, err := service.SetPeriod(ctx, 1, due)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.True(t, p.DueAt.Equal(due))
	assert.False(t, p.Paid)
	mockRepo.AssertExpectations(t)
}

func TestSetPeriod_NotFuture(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, logger.NewNop())

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }

	_, err := service.SetPeriod(context.Background(), 1, base.Add(-time.Hour))
	assert.ErrorIs(t, err, errors.ErrNotFuture)

	// Exactly "now" is not strictly in the future either.
	_, err = service.SetPeriod(context.Background(), 1, base)
	assert.ErrorIs(t, err, errors.ErrNotFuture)

	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestSetPeriod_AlreadySettled(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, logger.NewNop())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }

	mockRepo.On("Find", ctx, int64(7)).Return(&domain.PaymentPeriod{ID: 7, Paid: true}, nil)

	_, err := service.SetPeriod(ctx, 7, base.Add(time.Hour))
	assert.ErrorIs(t, err, errors.ErrAlreadySettled)
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestSetPeriod_RescheduleUnsettled(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, logger.NewNop())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }

	created := base.Add(-48 * time.Hour)
	mockRepo.On("Find", ctx, int64(2)).Return(&domain.PaymentPeriod{
		ID:        2,
		DueAt:     base.Add(time.Hour),
		Paid:      false,
		CreatedAt: created,
	}, nil)
	mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.PaymentPeriod")).Return(nil)

	p, err := service.SetPeriod(ctx, 2, base.Add(72*time.Hour))

	assert.NoError(t, err)
	assert.True(t, p.DueAt.Equal(base.Add(72*time.Hour)))
	assert.True(t, p.CreatedAt.Equal(created))
	mockRepo.AssertExpectations(t)
}
