package cancel_class

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	cancelClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_class"
)

const (
	msgInvalidSessionID = "некорректный ID занятия"
	msgSessionNotFound  = "занятие не найдено"
)

type Handler struct {
	useCase CancelClassUseCase
	logger  Logger
}

func NewHandler(useCase CancelClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("POST /sessions/{id}/cancel - Invalid session ID: %s", vars["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelClass.Request{SessionID: sessionID})
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			h.logger.Warn("POST /sessions/{id}/cancel - Rejected: session_id=%d, reason=%s", sessionID, rej.Reason)
			if rej.Reason == booking.ReasonNotFound {
				handlers.RespondNotFound(w, msgSessionNotFound)
				return
			}
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, cancelClass.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("POST /sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/cancel - Session cancelled: session_id=%d, refunded=%d, discarded=%d",
		sessionID, result.RefundedCount, result.DiscardedWaitlistCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
