package booking

import (
	"errors"
	"fmt"
)

// Reason код отказа, который видит вызывающая сторона
type Reason string

const (
	ReasonSessionCancelled         Reason = "SessionCancelled"
	ReasonDuplicateReservation     Reason = "DuplicateReservation"
	ReasonOutsideReservationWindow Reason = "OutsideReservationWindow"
	ReasonNotFound                 Reason = "NotFound"
	ReasonAlreadyCancelled         Reason = "AlreadyCancelled"
)

// RejectionError ожидаемый отказ движка бронирований
// Несёт причину и числовой контекст для конкретного сообщения пользователю.
type RejectionError struct {
	Reason Reason

	// OutsideReservationWindow
	MinutesUntilStart int
	RequiredMinutes   int

	// DuplicateReservation: позиция в очереди, если клиент уже ждёт (0 - есть активная бронь)
	WaitlistPosition int
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonOutsideReservationWindow:
		return fmt.Sprintf("booking: %s: %d minutes until start, %d required",
			e.Reason, e.MinutesUntilStart, e.RequiredMinutes)
	case ReasonDuplicateReservation:
		if e.WaitlistPosition > 0 {
			return fmt.Sprintf("booking: %s: already waitlisted at position %d", e.Reason, e.WaitlistPosition)
		}
		return fmt.Sprintf("booking: %s: already holds an active reservation", e.Reason)
	default:
		return fmt.Sprintf("booking: %s", e.Reason)
	}
}

// Is сравнивает отказы по причине, чтобы работал errors.Is с переменными ниже
func (e *RejectionError) Is(target error) bool {
	var t *RejectionError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

// MinutesShort сколько минут не хватило до окна бронирования
func (e *RejectionError) MinutesShort() int {
	if short := e.RequiredMinutes - e.MinutesUntilStart; short > 0 {
		return short
	}
	return 0
}

var (
	// ErrSessionCancelled занятие отменено студией
	ErrSessionCancelled = &RejectionError{Reason: ReasonSessionCancelled}

	// ErrDuplicateReservation клиент уже записан или стоит в очереди
	ErrDuplicateReservation = &RejectionError{Reason: ReasonDuplicateReservation}

	// ErrOutsideReservationWindow до начала занятия осталось слишком мало времени
	ErrOutsideReservationWindow = &RejectionError{Reason: ReasonOutsideReservationWindow}

	// ErrNotFound бронирование не найдено или уже не активно
	ErrNotFound = &RejectionError{Reason: ReasonNotFound}

	// ErrAlreadyCancelled занятие уже отменено
	ErrAlreadyCancelled = &RejectionError{Reason: ReasonAlreadyCancelled}
)

// ErrInvariantViolation нарушение внутреннего инварианта (ошибка в коде, не пользователя)
// Никогда не превращается в обычный отказ.
var ErrInvariantViolation = errors.New("booking: internal invariant violation")

// AsRejection достаёт RejectionError из цепочки ошибок
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
