package reserve_class

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	reserveClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reserve_class"
)

const (
	msgInvalidSessionID   = "некорректный ID занятия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные записи"
	msgClientNotFound     = "клиент не найден"
	msgClientInactive     = "клиент деактивирован"
	msgSessionNotFound    = "занятие не найдено"
)

type Handler struct {
	useCase ReserveClassUseCase
	logger  Logger
}

func NewHandler(useCase ReserveClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/reservations
// 201 - место подтверждено, 202 - клиент поставлен в очередь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/reservations - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req ReserveClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			h.logger.Warn("POST /sessions/{id}/reservations - Rejected: session_id=%d, client_id=%d, reason=%s",
				sessionID, req.ClientID, rej.Reason)
			if rej.Reason == booking.ReasonNotFound {
				handlers.RespondNotFound(w, msgSessionNotFound)
				return
			}
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, reserveClass.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/reservations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, reserveClass.ErrClientNotFound):
			h.logger.Warn("POST /sessions/{id}/reservations - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, reserveClass.ErrClientInactive):
			h.logger.Warn("POST /sessions/{id}/reservations - Client inactive: client_id=%d", req.ClientID)
			handlers.RespondUnprocessableEntity(w, msgClientInactive)

		default:
			h.logger.Error("POST /sessions/{id}/reservations - Failed to reserve: session_id=%d, client_id=%d, error=%v",
				sessionID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Outcome == booking.Waitlisted {
		h.logger.Info("POST /sessions/{id}/reservations - Client waitlisted: session_id=%d, client_id=%d, position=%d",
			sessionID, req.ClientID, result.Position)
		handlers.RespondJSON(w, http.StatusAccepted, response)
		return
	}

	h.logger.Info("POST /sessions/{id}/reservations - Reservation confirmed: reservation_id=%d, session_id=%d, client_id=%d",
		result.Reservation.ID, sessionID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
