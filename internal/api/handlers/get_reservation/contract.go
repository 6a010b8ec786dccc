package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetReservation(ctx context.Context, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
