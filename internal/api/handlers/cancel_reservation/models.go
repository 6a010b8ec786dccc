package cancel_reservation

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
	cancelReservation "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	Outcome               string                      `json:"outcome"` // cancelled_on_time | cancelled_late
	Reservation           *models.ReservationResponse `json:"reservation"`
	RefundIssued          bool                        `json:"refundIssued"`
	PromotedClientID      *int64                      `json:"promotedClientId,omitempty"`
	PromotedReservationID *int64                      `json:"promotedReservationId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		Outcome:               string(resp.Kind.Status()),
		Reservation:           models.FromDomainReservation(resp.Reservation),
		RefundIssued:          resp.RefundIssued,
		PromotedClientID:      resp.PromotedClientID,
		PromotedReservationID: resp.PromotedReservationID,
	}
}
