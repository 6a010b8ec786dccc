package events

import "time"

// RefundReason причина возврата кредита плана
type RefundReason string

const (
	RefundClientCancelledOnTime RefundReason = "client_cancelled_on_time"
	RefundClassCancelled        RefundReason = "class_cancelled"
)

// CreditRefund сигнал возврата кредита плана клиента
type CreditRefund struct {
	ReservationID int64        `json:"reservationId"`
	SessionID     int64        `json:"sessionId"`
	ClientID      int64        `json:"clientId"`
	ClientPlanID  *int64       `json:"clientPlanId,omitempty"`
	Reason        RefundReason `json:"reason"`
	EmittedAt     time.Time    `json:"emittedAt"`
}

// WaitlistPromotion уведомление о переводе клиента из очереди в бронь
type WaitlistPromotion struct {
	SessionID     int64     `json:"sessionId"`
	ClientID      int64     `json:"clientId"`
	ReservationID int64     `json:"reservationId"`
	PromotedAt    time.Time `json:"promotedAt"`
}
