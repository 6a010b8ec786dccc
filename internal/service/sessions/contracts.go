package sessions

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSession, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetActiveBySession(ctx context.Context, sessionID int64) ([]*domain.Reservation, error)
	GetByClientWithFilter(ctx context.Context, filter domain.ClientReservationsFilter) ([]*domain.ClientActivity, error)
}

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	GetBySession(ctx context.Context, sessionID int64) ([]*domain.WaitlistEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
