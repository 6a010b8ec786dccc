package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
)

// SessionRunner проводит операцию над занятием под блокировкой и в транзакции
type SessionRunner interface {
	Run(ctx context.Context, op sessionflow.Operation, apply sessionflow.ApplyFunc) (booking.Changes, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// Metrics счётчик исходов
type Metrics interface {
	IncBookingOutcome(operation, outcome, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
