package leave_waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow/flowtest"
)

var now = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

func TestLeaveWaitlist(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(3*time.Hour))
	h.Book(1, 1)
	h.Enqueue(1, 2, now.Add(-3*time.Minute))
	h.Enqueue(1, 3, now.Add(-2*time.Minute))
	h.Enqueue(1, 4, now.Add(-time.Minute))
	uc := NewUseCase(h.Runner, h.Logger)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 1, ClientID: 3})
	require.NoError(t, err)
	assert.True(t, resp.Removed)
	assert.Equal(t, []int64{2, 4}, h.Store.WaitlistClients(1))

	// повторный выход - успешный no-op
	resp, err = uc.Execute(context.Background(), &Request{SessionID: 1, ClientID: 3})
	require.NoError(t, err)
	assert.False(t, resp.Removed)

	// клиент с подтверждённой бронью в очереди не стоит
	resp, err = uc.Execute(context.Background(), &Request{SessionID: 1, ClientID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Removed)
	assert.Equal(t, 1, h.Store.ActiveCount(1))
}

func TestLeaveWaitlist_Errors(t *testing.T) {
	h := flowtest.NewHarness(now)
	cs := h.ScheduleSession(1, 1, now.Add(3*time.Hour))
	cs.Status = domain.SessionCancelled
	h.Store.AddSession(cs)
	uc := NewUseCase(h.Runner, h.Logger)

	_, err := uc.Execute(context.Background(), &Request{SessionID: 1, ClientID: 2})
	assert.ErrorIs(t, err, booking.ErrSessionCancelled)

	_, err = uc.Execute(context.Background(), &Request{SessionID: 2, ClientID: 2})
	assert.ErrorIs(t, err, booking.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{SessionID: 1, ClientID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
