package booking

import "github.com/m04kA/SMC-StudioBookingService/internal/domain"

// ReserveKind исход успешного запроса на бронирование
type ReserveKind string

const (
	Confirmed  ReserveKind = "confirmed"
	Waitlisted ReserveKind = "waitlisted"
)

// ReserveOutcome результат Reserve
type ReserveOutcome struct {
	Kind ReserveKind

	// Confirmed
	Reservation *domain.Reservation

	// Waitlisted
	Entry    *domain.WaitlistEntry
	Position int // позиция в очереди на момент постановки, с 1
}

// CancelOutcome результат Cancel
type CancelOutcome struct {
	Kind         domain.CancellationKind
	Reservation  *domain.Reservation
	RefundIssued bool       // сигнал возврата кредита плана (только on_time)
	Promotion    *Promotion // nil, если очередь была пуста
}

// Promotion перевод клиента из очереди в подтверждённую бронь
type Promotion struct {
	Entry       *domain.WaitlistEntry
	Reservation *domain.Reservation
}

// CancelClassOutcome результат CancelClass
type CancelClassOutcome struct {
	AffectedReservations []*domain.Reservation
	RefundedCount        int
	DiscardedEntries     []*domain.WaitlistEntry
}

// AffectedReservationIDs идентификаторы отменённых бронирований
func (o *CancelClassOutcome) AffectedReservationIDs() []int64 {
	ids := make([]int64, 0, len(o.AffectedReservations))
	for _, r := range o.AffectedReservations {
		ids = append(ids, r.ID)
	}
	return ids
}

// WithdrawOutcome результат добровольного выхода из очереди
type WithdrawOutcome struct {
	Removed bool
	Entry   *domain.WaitlistEntry
}

// Changes изменения, накопленные агрегатом для сохранения
// Каждый переход состояния попадает сюда ровно один раз.
type Changes struct {
	CreatedReservations []*domain.Reservation
	UpdatedReservations []*domain.Reservation
	CreatedEntries      []*domain.WaitlistEntry
	RemovedEntries      []*domain.WaitlistEntry
	SessionStatus       *domain.SessionStatus

	// Сигналы, отправляемые после фиксации транзакции
	Refunds    []*domain.Reservation
	Promotions []*Promotion
}

// IsEmpty возвращает true, если сохранять нечего
func (c Changes) IsEmpty() bool {
	return len(c.CreatedReservations) == 0 &&
		len(c.UpdatedReservations) == 0 &&
		len(c.CreatedEntries) == 0 &&
		len(c.RemovedEntries) == 0 &&
		c.SessionStatus == nil
}
