package update_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные значения политики: допустимо от 0 до 10080 минут"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /policy - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /policy - Failed to update policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /policy - Policy updated: reservationLead=%d, cancellationLead=%d",
		result.ReservationLeadMinutes, result.CancellationLeadMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
