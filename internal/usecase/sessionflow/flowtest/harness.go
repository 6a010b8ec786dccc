package flowtest

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
	"github.com/m04kA/SMC-StudioBookingService/pkg/keylock"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Harness собранное окружение операций над занятиями
type Harness struct {
	Store     *Store
	Tx        *TxManager
	Policies  *Policies
	Publisher *Publisher
	Metrics   *Metrics
	Clock     *Clock
	Logger    *Logger
	Locker    *keylock.KeyedMutex
	Runner    *sessionflow.Runner
}

// NewHarness создает окружение с политикой по умолчанию и часами на now
func NewHarness(now time.Time) *Harness {
	h := &Harness{
		Store:     NewStore(),
		Tx:        &TxManager{},
		Policies:  &Policies{Policy: domain.DefaultPolicy()},
		Publisher: &Publisher{},
		Metrics:   NewMetrics(),
		Clock:     NewClock(now),
		Logger:    &Logger{},
		Locker:    keylock.New(),
	}
	h.Runner = sessionflow.NewRunner(
		h.Locker,
		h.Tx,
		h.Store.Sessions,
		h.Store.Reservations,
		h.Store.Waitlist,
		h.Policies,
		h.Publisher,
		h.Metrics,
		h.Logger,
	).WithTimeProvider(h.Clock)
	return h
}

// ScheduleSession добавляет занятие с началом в startsAt (UTC)
func (h *Harness) ScheduleSession(id int64, capacity int, startsAt time.Time) *domain.ClassSession {
	startsAt = startsAt.UTC()
	cs := &domain.ClassSession{
		ID:        id,
		ServiceID: 1,
		BranchID:  1,
		Date:      time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, time.UTC),
		StartTime: types.NewTimeString(startsAt),
		EndTime:   types.NewTimeString(startsAt.Add(time.Hour)),
		Capacity:  capacity,
		Status:    domain.SessionScheduled,
	}
	h.Store.AddSession(cs)
	return cs
}

// Book добавляет активную бронь клиента
func (h *Harness) Book(sessionID, clientID int64) int64 {
	return h.Store.AddReservation(&domain.Reservation{
		SessionID: sessionID,
		ClientID:  clientID,
		Status:    domain.ReservationActive,
		CreatedAt: h.Clock.Now(),
		UpdatedAt: h.Clock.Now(),
	})
}

// Enqueue ставит клиента в очередь со временем at
func (h *Harness) Enqueue(sessionID, clientID int64, at time.Time) int64 {
	return h.Store.AddEntry(&domain.WaitlistEntry{
		SessionID:  sessionID,
		ClientID:   clientID,
		EnqueuedAt: at,
	})
}
