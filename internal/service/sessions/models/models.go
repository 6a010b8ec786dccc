package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidLimit возвращается при лимите вне допустимых границ
	ErrInvalidLimit = errors.New("invalid limit")
)

// Request модели

// GetClientActivityRequest запрос истории бронирований клиента
type GetClientActivityRequest struct {
	ClientID int64      `json:"clientId"`
	Status   *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	From     *time.Time `json:"from,omitempty"`   // Начало периода по дате занятия (опционально)
	To       *time.Time `json:"to,omitempty"`     // Конец периода (опционально)
	Limit    int        `json:"limit,omitempty"`  // 0 = по умолчанию
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClientActivityRequest) ToDomainFilter() (domain.ClientReservationsFilter, error) {
	filter := domain.ClientReservationsFilter{
		ClientID: r.ClientID,
		From:     r.From,
		To:       r.To,
		Limit:    r.Limit,
	}

	if r.Status != nil {
		status, ok := domain.ParseReservationStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, ErrInvalidPeriod
	}

	if r.Limit < 0 || r.Limit > domain.MaxActivityLimit {
		return filter, ErrInvalidLimit
	}

	return filter, nil
}

// Response модели

// SessionResponse данные занятия
type SessionResponse struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	BranchID    int64   `json:"branchId"`
	ServiceName *string `json:"serviceName,omitempty"`
	Date        string  `json:"date"`      // "2026-10-20"
	StartTime   string  `json:"startTime"` // "18:00"
	EndTime     string  `json:"endTime"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                 int64     `json:"id"`
	SessionID          int64     `json:"sessionId"`
	ClientID           int64     `json:"clientId"`
	ClientPlanID       *int64    `json:"clientPlanId,omitempty"`
	Status             string    `json:"status"`
	CancelledAt        *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	MinutesBeforeStart *int      `json:"minutesBeforeStart,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// WaitlistEntryResponse запись очереди ожидания
type WaitlistEntryResponse struct {
	ID           int64     `json:"id"`
	Position     int       `json:"position"` // с 1
	ClientID     int64     `json:"clientId"`
	ClientPlanID *int64    `json:"clientPlanId,omitempty"`
	EnqueuedAt   time.Time `json:"enqueuedAt"`
}

// RosterResponse состав занятия
type RosterResponse struct {
	Session        SessionResponse         `json:"session"`
	ConfirmedCount int                     `json:"confirmedCount"`
	AvailableSeats int                     `json:"availableSeats"`
	Reservations   []ReservationResponse   `json:"reservations"`
	Waitlist       []WaitlistEntryResponse `json:"waitlist"`
}

// ClientActivityResponse бронь клиента вместе с данными занятия
type ClientActivityResponse struct {
	ReservationResponse
	SessionDate string  `json:"sessionDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	BranchID    int64   `json:"branchId"`
	ServiceName *string `json:"serviceName,omitempty"`
}

// ClientActivityListResponse история бронирований клиента
type ClientActivityListResponse struct {
	Reservations []ClientActivityResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель занятия в DTO
func FromDomainSession(s *domain.ClassSession) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		ServiceID:   s.ServiceID,
		BranchID:    s.BranchID,
		ServiceName: s.ServiceName,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		Status:      string(s.Status),
	}
}

// FromDomainReservation конвертирует domain модель бронирования в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		SessionID:          r.SessionID,
		ClientID:           r.ClientID,
		ClientPlanID:       r.ClientPlanID,
		Status:             string(r.Status),
		MinutesBeforeStart: r.MinutesBeforeStart,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainWaitlist конвертирует упорядоченную очередь в DTO с позициями
func FromDomainWaitlist(entries []*domain.WaitlistEntry) []WaitlistEntryResponse {
	resp := make([]WaitlistEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = WaitlistEntryResponse{
			ID:           e.ID,
			Position:     i + 1,
			ClientID:     e.ClientID,
			ClientPlanID: e.ClientPlanID,
			EnqueuedAt:   e.EnqueuedAt,
		}
	}
	return resp
}

// FromDomainActivityList конвертирует историю клиента в DTO
func FromDomainActivityList(items []*domain.ClientActivity) *ClientActivityListResponse {
	resp := &ClientActivityListResponse{
		Reservations: make([]ClientActivityResponse, 0, len(items)),
	}

	for _, item := range items {
		resp.Reservations = append(resp.Reservations, ClientActivityResponse{
			ReservationResponse: *FromDomainReservation(&item.Reservation),
			SessionDate:         item.SessionDate.Format(domain.DateFormat),
			StartTime:           item.StartTime.String(),
			EndTime:             item.EndTime.String(),
			BranchID:            item.BranchID,
			ServiceName:         item.ServiceName,
		})
	}

	return resp
}
