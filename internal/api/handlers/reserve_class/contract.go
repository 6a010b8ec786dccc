package reserve_class

import (
	"context"

	reserveClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reserve_class"
)

type ReserveClassUseCase interface {
	Execute(ctx context.Context, req *reserveClass.Request) (*reserveClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
