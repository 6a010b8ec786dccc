package update_policy

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	ReservationLeadMinutes  *int `json:"reservationLeadMinutes,omitempty"`
	CancellationLeadMinutes *int `json:"cancellationLeadMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest() *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		ReservationLeadMinutes:  r.ReservationLeadMinutes,
		CancellationLeadMinutes: r.CancellationLeadMinutes,
	}
}
