package cancel_class

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
)

// SessionRunner проводит операцию над занятием под блокировкой и в транзакции
type SessionRunner interface {
	Run(ctx context.Context, op sessionflow.Operation, apply sessionflow.ApplyFunc) (booking.Changes, error)
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
