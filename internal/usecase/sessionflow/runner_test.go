package sessionflow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow/flowtest"
)

var now = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

func cancelOp(sessionID int64) sessionflow.Operation {
	return sessionflow.Operation{Name: "cancel", SessionID: sessionID, RefundReason: events.RefundClientCancelledOnTime}
}

func TestRunner_PersistsChangesAndEmitsAfterCommit(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(6*time.Hour))
	resID := h.Book(1, 101)
	h.Enqueue(1, 201, now.Add(-time.Hour))

	changes, err := h.Runner.Run(context.Background(), cancelOp(1),
		func(s *booking.Session, policy domain.Policy, at time.Time) error {
			_, err := s.Cancel(resID, at, policy)
			return err
		})
	require.NoError(t, err)

	require.Len(t, changes.Promotions, 1)
	promoted := changes.Promotions[0].Reservation
	assert.NotZero(t, promoted.ID)

	assert.Equal(t, domain.ReservationCancelledOnTime, h.Store.Reservation(resID).Status)
	assert.Equal(t, domain.ReservationActive, h.Store.Reservation(promoted.ID).Status)
	assert.Equal(t, 1, h.Store.ActiveCount(1))
	assert.Empty(t, h.Store.WaitlistClients(1))

	assert.Equal(t, []int64{resID}, h.Publisher.RefundedReservations())
	require.Len(t, h.Publisher.Promotions, 1)
	assert.Equal(t, int64(201), h.Publisher.Promotions[0].ClientID)
	assert.Equal(t, events.RefundClientCancelledOnTime, h.Publisher.Refunds[0].Reason)
	assert.Equal(t, 1, h.Metrics.Outcome("cancel", "promoted", ""))

	// блокировка снята
	assert.Equal(t, 0, h.Locker.Len())
}

func TestRunner_UnknownSessionIsNotFound(t *testing.T) {
	h := flowtest.NewHarness(now)

	_, err := h.Runner.Run(context.Background(), cancelOp(404),
		func(*booking.Session, domain.Policy, time.Time) error { return nil })

	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestRunner_RejectionPersistsNothing(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(6*time.Hour))

	_, err := h.Runner.Run(context.Background(), cancelOp(1),
		func(s *booking.Session, policy domain.Policy, at time.Time) error {
			_, err := s.Cancel(999, at, policy)
			return err
		})

	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.Empty(t, h.Publisher.Refunds)
}

func TestRunner_InvariantViolationIsReported(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(6*time.Hour))
	h.Book(1, 101)
	h.Book(1, 102) // переполнено в обход движка

	_, err := h.Runner.Run(context.Background(), cancelOp(1),
		func(*booking.Session, domain.Policy, time.Time) error { return nil })

	assert.ErrorIs(t, err, booking.ErrInvariantViolation)
	_, isRejection := booking.AsRejection(err)
	assert.False(t, isRejection)
	assert.Equal(t, 1, h.Metrics.Violations["cancel"])
	assert.True(t, h.Logger.Contains("FATAL ANOMALY"))
}

func TestRunner_SignalFailureDoesNotFailOperation(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 2, now.Add(6*time.Hour))
	resID := h.Book(1, 101)
	h.Publisher.Err = errors.New("broker down")

	_, err := h.Runner.Run(context.Background(), cancelOp(1),
		func(s *booking.Session, policy domain.Policy, at time.Time) error {
			_, err := s.Cancel(resID, at, policy)
			return err
		})

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelledOnTime, h.Store.Reservation(resID).Status)
	assert.Equal(t, 1, h.Metrics.Signals["credit_refund/failed"])
}

func TestRunner_LockWaitCancelled(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(6*time.Hour))

	unlock, err := h.Locker.Lock(context.Background(), sessionflow.SessionLockKey(1))
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = h.Runner.Run(ctx, cancelOp(1),
		func(*booking.Session, domain.Policy, time.Time) error { return nil })

	assert.ErrorIs(t, err, sessionflow.ErrLock)
	assert.Equal(t, 0, h.Tx.Calls)
}

func TestRunner_PolicyLoadFailure(t *testing.T) {
	h := flowtest.NewHarness(now)
	h.ScheduleSession(1, 1, now.Add(6*time.Hour))
	h.Policies.Err = errors.New("db unavailable")

	_, err := h.Runner.Run(context.Background(), cancelOp(1),
		func(*booking.Session, domain.Policy, time.Time) error { return nil })

	assert.ErrorIs(t, err, sessionflow.ErrLoad)
}
