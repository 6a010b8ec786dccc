package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// UpdatePolicyRequest запрос на обновление политики
// Поля опциональны - обновляются только переданные значения
type UpdatePolicyRequest struct {
	ReservationLeadMinutes  *int `json:"reservationLeadMinutes,omitempty"`
	CancellationLeadMinutes *int `json:"cancellationLeadMinutes,omitempty"`
}

// PolicyResponse ответ с текущей политикой
type PolicyResponse struct {
	ReservationLeadMinutes  int        `json:"reservationLeadMinutes"`
	CancellationLeadMinutes int        `json:"cancellationLeadMinutes"`
	IsDefault               bool       `json:"isDefault"` // в хранилище ещё нет записи
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует доменную политику в ответ
func FromDomainPolicy(p *domain.Policy, isDefault bool) *PolicyResponse {
	resp := &PolicyResponse{
		ReservationLeadMinutes:  p.ReservationLeadMinutes,
		CancellationLeadMinutes: p.CancellationLeadMinutes,
		IsDefault:               isDefault,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
