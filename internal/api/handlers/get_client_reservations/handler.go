package get_client_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service SessionService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service SessionService, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/reservations
// Query params: status, from, to, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/reservations - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		clientID,
		query.Get("status"),
		query.Get("from"),
		query.Get("to"),
		query.Get("limit"),
		h.loc,
	)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetClientActivity(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /clients/{clientId}/reservations - Invalid filter: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /clients/{clientId}/reservations - Failed to get reservations: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{clientId}/reservations - Reservations retrieved: client_id=%d, count=%d",
		clientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
