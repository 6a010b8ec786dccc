package get_session_roster

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions"
)

const (
	msgInvalidSessionID = "некорректный ID занятия"
	msgNotFound         = "занятие не найдено"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}/roster
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sessions/{id}/roster - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	roster, err := h.service.GetRoster(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id}/roster - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /sessions/{id}/roster - Failed to get roster: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{id}/roster - Roster retrieved: session_id=%d, confirmed=%d, waitlisted=%d",
		sessionID, roster.ConfirmedCount, len(roster.Waitlist))
	handlers.RespondJSON(w, http.StatusOK, roster)
}
