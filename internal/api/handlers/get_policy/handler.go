package get_policy

import (
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
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

// Handle GET /api/v1/policy
// Пока политика не сохранена, возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /policy - Failed to get policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /policy - Policy retrieved: reservationLead=%d, cancellationLead=%d, default=%t",
		result.ReservationLeadMinutes, result.CancellationLeadMinutes, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
