package cancel_class

import (
	"context"

	cancelClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_class"
)

type CancelClassUseCase interface {
	Execute(ctx context.Context, req *cancelClass.Request) (*cancelClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
