package reserve_class

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
	reserveClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reserve_class"
)

// ReserveClassRequest HTTP request model
type ReserveClassRequest struct {
	ClientID     int64  `json:"clientId"`
	ClientPlanID *int64 `json:"clientPlanId,omitempty"`
}

// WaitlistEntryResponse запись очереди в ответе
type WaitlistEntryResponse struct {
	ID         int64  `json:"id"`
	SessionID  int64  `json:"sessionId"`
	ClientID   int64  `json:"clientId"`
	EnqueuedAt string `json:"enqueuedAt"`
}

// ReserveClassResponse HTTP response model
type ReserveClassResponse struct {
	Outcome     string                      `json:"outcome"` // confirmed | waitlisted
	Reservation *models.ReservationResponse `json:"reservation,omitempty"`
	Position    int                         `json:"position,omitempty"`
	Entry       *WaitlistEntryResponse      `json:"entry,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveClassRequest) ToUseCaseRequest(sessionID int64) *reserveClass.Request {
	return &reserveClass.Request{
		SessionID:    sessionID,
		ClientID:     r.ClientID,
		ClientPlanID: r.ClientPlanID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveClass.Response) *ReserveClassResponse {
	out := &ReserveClassResponse{Outcome: string(resp.Outcome)}

	if resp.Outcome == booking.Confirmed {
		out.Reservation = models.FromDomainReservation(resp.Reservation)
		return out
	}

	out.Position = resp.Position
	if resp.Entry != nil {
		out.Entry = &WaitlistEntryResponse{
			ID:         resp.Entry.ID,
			SessionID:  resp.Entry.SessionID,
			ClientID:   resp.Entry.ClientID,
			EnqueuedAt: resp.Entry.EnqueuedAt.Format(time.RFC3339),
		}
	}
	return out
}
