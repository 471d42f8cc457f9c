package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stipend/internal/domain"
	"stipend/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ActiveRecipients(ctx context.Context) ([]*domain.RecipientSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecipientSummary), args.Error(1)
}

func (m *MockRepository) Recipient(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockRepository) Periods(ctx context.Context, limit int) ([]*domain.PaymentPeriod, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentPeriod), args.Error(1)
}

func (m *MockRepository) PaidPeriods(ctx context.Context, recipientID uuid.UUID) (map[int64]bool, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func TestPaymentHistory_ReportsCurrentAmount(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 120)
	ctx := context.Background()

	id := uuid.New()
	due1 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	// The recipient was paid period 1 at an older stipend of 1000; the
	// configured amount has since been raised to 2500.
	mockRepo.On("Recipient", ctx, id).Return(&domain.Recipient{
		ID:            id,
		MonthlyAmount: decimal.NewFromInt(2500),
		IsActive:      true,
	}, nil)
	mockRepo.On("Periods", ctx, 120).Return([]*domain.PaymentPeriod{
		{ID: 1, DueAt: due1, Paid: true},
		{ID: 2, DueAt: due2},
	}, nil)
	mockRepo.On("PaidPeriods", ctx, id).Return(map[int64]bool{1: true}, nil)

	entries, err := service.PaymentHistory(ctx, id)

	require.NoError(t, err)
	require.Len(t, entries, 2)

	// History reports the current configured amount for every period,
	// including ones already paid at a different rate. Exact historical
	// amounts are on the payment records, not in this projection.
	assert.Equal(t, int64(1), entries[0].PeriodID)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(2500)))
	assert.True(t, entries[0].Paid)
	assert.True(t, entries[0].DueAt.Equal(due1))

	assert.Equal(t, int64(2), entries[1].PeriodID)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(2500)))
	assert.False(t, entries[1].Paid)
}

func TestPaymentHistory_RecipientNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 120)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Recipient", ctx, id).Return(nil, errors.ErrRecipientNotFound)

	_, err := service.PaymentHistory(ctx, id)
	assert.ErrorIs(t, err, errors.ErrRecipientNotFound)
}

func TestPaymentHistory_IncludesRemovedRecipients(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 120)
	ctx := context.Background()

	// Removal is a soft delete: history stays queryable.
	id := uuid.New()
	mockRepo.On("Recipient", ctx, id).Return(&domain.Recipient{
		ID:            id,
		MonthlyAmount: decimal.NewFromInt(900),
		IsActive:      false,
	}, nil)
	mockRepo.On("Periods", ctx, 120).Return([]*domain.PaymentPeriod{
		{ID: 1, DueAt: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), Paid: true},
	}, nil)
	mockRepo.On("PaidPeriods", ctx, id).Return(map[int64]bool{1: true}, nil)

	entries, err := service.PaymentHistory(ctx, id)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Paid)
}

func TestActiveRecipients(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 120)
	ctx := context.Background()

	roster := []*domain.RecipientSummary{
		{ID: uuid.New(), MonthlyAmount: decimal.NewFromInt(100), Role: "Engineer"},
		{ID: uuid.New(), MonthlyAmount: decimal.NewFromInt(200), Role: "Designer"},
	}
	mockRepo.On("ActiveRecipients", ctx).Return(roster, nil)

	got, err := service.ActiveRecipients(ctx)

	require.NoError(t, err)
	assert.Equal(t, roster, got)
}
