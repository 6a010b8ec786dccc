package sessionflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
)

// Locker блокировка занятия (в памяти процесса или в Redis)
// Функция снятия блокировки должна быть идемпотентной.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSession, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus, at time.Time) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveBySession(ctx context.Context, sessionID int64) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	UpdateCancellation(ctx context.Context, reservation *domain.Reservation) error
}

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	GetBySession(ctx context.Context, sessionID int64) ([]*domain.WaitlistEntry, error)
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// PolicyProvider источник действующей политики
type PolicyProvider interface {
	Current(ctx context.Context) (domain.Policy, error)
}

// SignalPublisher получатель сигналов после фиксации транзакции
type SignalPublisher interface {
	PublishCreditRefund(ctx context.Context, event events.CreditRefund) error
	PublishPromotion(ctx context.Context, event events.WaitlistPromotion) error
}

// Metrics счётчики исходов операций
type Metrics interface {
	IncBookingOutcome(operation, outcome, reason string)
	IncSignal(kind, result string)
	IncInvariantViolation(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
