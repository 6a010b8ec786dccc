package leave_waitlist

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	leaveWaitlist "github.com/m04kA/SMC-StudioBookingService/internal/usecase/leave_waitlist"
)

const (
	msgInvalidParams   = "некорректный ID занятия или клиента"
	msgSessionNotFound = "занятие не найдено"
)

// LeaveWaitlistResponse HTTP response model
type LeaveWaitlistResponse struct {
	Removed bool `json:"removed"`
}

type Handler struct {
	useCase LeaveWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase LeaveWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sessions/{sessionId}/waitlist/{clientId}
// Отсутствие клиента в очереди - успешный ответ с removed=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, errSession := strconv.ParseInt(vars["sessionId"], 10, 64)
	clientID, errClient := strconv.ParseInt(vars["clientId"], 10, 64)
	if errSession != nil || errClient != nil || sessionID <= 0 || clientID <= 0 {
		h.logger.Warn("DELETE /sessions/{id}/waitlist/{clientId} - Invalid params: session=%s, client=%s",
			vars["sessionId"], vars["clientId"])
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &leaveWaitlist.Request{SessionID: sessionID, ClientID: clientID})
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			h.logger.Warn("DELETE /sessions/{id}/waitlist/{clientId} - Rejected: session_id=%d, reason=%s",
				sessionID, rej.Reason)
			if rej.Reason == booking.ReasonNotFound {
				handlers.RespondNotFound(w, msgSessionNotFound)
				return
			}
			handlers.RespondRejection(w, rej)
			return
		}

		h.logger.Error("DELETE /sessions/{id}/waitlist/{clientId} - Failed: session_id=%d, client_id=%d, error=%v",
			sessionID, clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /sessions/{id}/waitlist/{clientId} - Done: session_id=%d, client_id=%d, removed=%t",
		sessionID, clientID, result.Removed)
	handlers.RespondJSON(w, http.StatusOK, LeaveWaitlistResponse{Removed: result.Removed})
}
