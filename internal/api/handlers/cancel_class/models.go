package cancel_class

import (
	cancelClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_class"
)

const outcomeCancelled = "cancelled"

// CancelClassResponse HTTP response model
type CancelClassResponse struct {
	Outcome                string  `json:"outcome"`
	SessionID              int64   `json:"sessionId"`
	AffectedReservationIDs []int64 `json:"affectedReservationIds"`
	RefundedCount          int     `json:"refundedCount"`
	DiscardedWaitlistCount int     `json:"discardedWaitlistCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelClass.Response) *CancelClassResponse {
	ids := resp.AffectedReservationIDs
	if ids == nil {
		ids = []int64{}
	}
	return &CancelClassResponse{
		Outcome:                outcomeCancelled,
		SessionID:              resp.SessionID,
		AffectedReservationIDs: ids,
		RefundedCount:          resp.RefundedCount,
		DiscardedWaitlistCount: resp.DiscardedWaitlistCount,
	}
}
