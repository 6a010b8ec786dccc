package reserve_class

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модель запроса на место в занятии
type Request struct {
	SessionID    int64  // ID занятия
	ClientID     int64  // ID клиента студии
	ClientPlanID *int64 // План, с которого списывается занятие (опционально)
}

// Response исход бронирования
type Response struct {
	Outcome booking.ReserveKind

	// Outcome = confirmed
	Reservation *domain.Reservation

	// Outcome = waitlisted
	Entry    *domain.WaitlistEntry
	Position int // позиция в очереди, с 1
}
