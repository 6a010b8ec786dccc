package get_client_reservations

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetClientActivity(ctx context.Context, req *models.GetClientActivityRequest) (*models.ClientActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
