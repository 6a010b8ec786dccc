package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationActive          ReservationStatus = "active"
	ReservationCancelledOnTime ReservationStatus = "cancelled_on_time"
	ReservationCancelledLate   ReservationStatus = "cancelled_late"
	ReservationAttended        ReservationStatus = "attended"
	ReservationNoShow          ReservationStatus = "no_show"
)

// Reservation represents a confirmed seat of a client in a class session
type Reservation struct {
	ID           int64
	SessionID    int64
	ClientID     int64
	ClientPlanID *int64 // plan the class is charged to, nil for drop-in
	Status       ReservationStatus

	CancelledAt        *time.Time
	MinutesBeforeStart *int // lead time at the moment of cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies a seat
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// IsCancelled returns true if the reservation was cancelled either way
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelledOnTime || r.Status == ReservationCancelledLate
}

// ClientActivity is a reservation joined with its session, as shown in
// the client history
type ClientActivity struct {
	Reservation
	SessionDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	BranchID    int64
	ServiceName *string
}

// ClientReservationsFilter фильтр истории бронирований клиента
type ClientReservationsFilter struct {
	ClientID int64              // Обязательный параметр
	Status   *ReservationStatus // Фильтр по статусу (опционально)
	From     *time.Time         // Начало периода по дате занятия (опционально)
	To       *time.Time         // Конец периода по дате занятия (опционально)
	Limit    int                // 0 = DefaultActivityLimit
}
