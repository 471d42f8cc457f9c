package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stipend/internal/domain"
	"stipend/pkg/errors"
	"stipend/pkg/logger"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, rec *domain.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, rec *domain.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, decimal.New(1, 13), logger.NewNop())
}

// --- Tests ---

func TestAddRecipient(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Find", ctx, id).Return(nil, errors.ErrRecipientNotFound)
	mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Recipient")).Return(nil)

	rec, err := service.AddRecipient(ctx, &AddRecipientRequest{
		ID:     id,
		Amount: decimal.NewFromInt(4000000000),
		Role:   "Regular Steward",
	})

	assert.NoError(t, err)
	assert.True(t, rec.IsActive)
	assert.Equal(t, "Regular Steward", rec.Role)
	assert.True(t, rec.MonthlyAmount.Equal(decimal.NewFromInt(4000000000)))
	mockRepo.AssertExpectations(t)
}

func TestAddRecipient_NilIdentifier(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.AddRecipient(context.Background(), &AddRecipientRequest{
		ID:     uuid.Nil,
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, errors.ErrInvalidIdentifier)
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestAddRecipient_InvalidAmount(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	cases := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-5)},
		{"fractional", decimal.NewFromFloat(10.5)},
		{"over cap", decimal.New(1, 14)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddRecipient(ctx, &AddRecipientRequest{
				ID:     uuid.New(),
				Amount: tc.amount,
			})
			assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		})
	}
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestAddRecipient_AlreadyActive(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Find", ctx, id).Return(&domain.Recipient{ID: id, IsActive: true}, nil)

	_, err := service.AddRecipient(ctx, &AddRecipientRequest{
		ID:     id,
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, errors.ErrAlreadyActive)
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestAddRecipient_ReaddAfterRemoval(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	prior := &domain.Recipient{
		ID:             id,
		MonthlyAmount:  decimal.NewFromInt(500),
		IsActive:       false,
		PayoutBalance:  decimal.NewFromInt(1500),
		RosterPosition: 3,
	}
	mockRepo.On("Find", ctx, id).Return(prior, nil)
	mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Recipient")).Return(nil)

	rec, err := service.AddRecipient(ctx, &AddRecipientRequest{
		ID:     id,
		Amount: decimal.NewFromInt(700),
		Role:   "Advisor",
	})

	assert.NoError(t, err)
	assert.True(t, rec.IsActive)
	// Re-adding keeps the original roster position and accrued balance.
	assert.Equal(t, int64(3), rec.RosterPosition)
	assert.True(t, rec.PayoutBalance.Equal(decimal.NewFromInt(1500)))
	assert.True(t, rec.MonthlyAmount.Equal(decimal.NewFromInt(700)))
}

func TestUpdateRecipient(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Find", ctx, id).Return(&domain.Recipient{
		ID:            id,
		MonthlyAmount: decimal.NewFromInt(100),
		Role:          "Engineer",
		IsActive:      true,
	}, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Recipient")).Return(nil)

	rec, err := service.UpdateRecipient(ctx, id, &UpdateRecipientRequest{
		Amount: decimal.NewFromInt(250),
		Role:   "Lead Engineer",
	})

	assert.NoError(t, err)
	assert.True(t, rec.MonthlyAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "Lead Engineer", rec.Role)
	mockRepo.AssertExpectations(t)
}

func TestUpdateRecipient_NotActive(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	inactive := uuid.New()
	missing := uuid.New()
	mockRepo.On("Find", ctx, inactive).Return(&domain.Recipient{ID: inactive, IsActive: false}, nil)
	mockRepo.On("Find", ctx, missing).Return(nil, errors.ErrRecipientNotFound)

	_, err := service.UpdateRecipient(ctx, inactive, &UpdateRecipientRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, errors.ErrNotActive)

	_, err = service.UpdateRecipient(ctx, missing, &UpdateRecipientRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, errors.ErrNotActive)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestRemoveRecipient(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Find", ctx, id).Return(&domain.Recipient{ID: id, IsActive: true}, nil)
	mockRepo.On("Deactivate", ctx, id).Return(nil)

	assert.NoError(t, service.RemoveRecipient(ctx, id))
	mockRepo.AssertExpectations(t)
}

func TestRemoveRecipient_NotActive(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("Find", ctx, id).Return(&domain.Recipient{ID: id, IsActive: false}, nil)

	err := service.RemoveRecipient(ctx, id)
	assert.ErrorIs(t, err, errors.ErrNotActive)
	mockRepo.AssertNotCalled(t, "Deactivate")
}
