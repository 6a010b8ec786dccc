package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context) (*domain.Policy, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).(*domain.Policy); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, p *domain.Policy) (*domain.Policy, error) {
	args := m.Called(ctx, p)
	if saved, ok := args.Get(0).(*domain.Policy); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var fallback = domain.Policy{ReservationLeadMinutes: 60, CancellationLeadMinutes: 120}

func TestService_CurrentFallsBackWhenMissing(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)

	svc := NewService(repo, fallback, nopLogger{})

	policy, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallback, policy)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Nil(t, resp.UpdatedAt)
}

func TestService_CurrentPropagatesStorageError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, errors.New("connection reset"))

	svc := NewService(repo, fallback, nopLogger{})

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateMergesPartialRequest(t *testing.T) {
	stored := &domain.Policy{ReservationLeadMinutes: 30, CancellationLeadMinutes: 120}
	updatedAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(stored, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Policy) bool {
		return p.ReservationLeadMinutes == 30 && p.CancellationLeadMinutes == 240
	})).Return(&domain.Policy{ReservationLeadMinutes: 30, CancellationLeadMinutes: 240, UpdatedAt: updatedAt}, nil)

	svc := NewService(repo, fallback, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{CancellationLeadMinutes: ptr.Ptr(240)})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.ReservationLeadMinutes)
	assert.Equal(t, 240, resp.CancellationLeadMinutes)
	assert.False(t, resp.IsDefault)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, updatedAt, *resp.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestService_UpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdatePolicyRequest
	}{
		{"empty request", &models.UpdatePolicyRequest{}},
		{"negative reservation lead", &models.UpdatePolicyRequest{ReservationLeadMinutes: ptr.Ptr(-1)}},
		{"cancellation lead above a week", &models.UpdatePolicyRequest{CancellationLeadMinutes: ptr.Ptr(domain.MaxLeadMinutes + 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("Get", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)

			svc := NewService(repo, fallback, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}
