package policy

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политики
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.Policy, error)
	Upsert(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
