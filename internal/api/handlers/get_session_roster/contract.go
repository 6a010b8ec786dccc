package get_session_roster

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetRoster(ctx context.Context, sessionID int64) (*models.RosterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
