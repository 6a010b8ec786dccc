package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	cancelReservation "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{ReservationID: reservationID})
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			h.logger.Warn("PATCH /reservations/{id}/cancel - Rejected: reservation_id=%d, reason=%s",
				reservationID, rej.Reason)
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d, kind=%s, refund=%t",
		reservationID, result.Kind, result.RefundIssued)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
