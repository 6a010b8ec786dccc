package cancel_reservation

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модель запроса на отмену брони
type Request struct {
	ReservationID int64
}

// Response результат отмены
type Response struct {
	Kind         domain.CancellationKind // on_time | late
	Reservation  *domain.Reservation     // отменённая бронь
	RefundIssued bool

	// Заполнены, если освободившееся место получил клиент из очереди
	PromotedClientID      *int64
	PromotedReservationID *int64
}
