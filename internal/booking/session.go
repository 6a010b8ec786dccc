package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Session агрегат занятия: трекер мест, очередь ожидания и активные брони
//
// Агрегат не потокобезопасен. Вызывающий обязан держать блокировку занятия
// на всё время от загрузки агрегата до сохранения его изменений.
type Session struct {
	info     *domain.ClassSession
	capacity *CapacityTracker
	waitlist *WaitlistQueue

	active         []*domain.Reservation         // в порядке создания
	activeByClient map[int64]*domain.Reservation // по ID клиента

	changes Changes
}

// NewSession собирает агрегат из загруженного состояния
// Возвращает ErrInvariantViolation, если хранилище уже содержит переполненное занятие
func NewSession(
	info *domain.ClassSession,
	active []*domain.Reservation,
	waitlist []*domain.WaitlistEntry,
) (*Session, error) {
	s := &Session{
		info:           info,
		waitlist:       NewWaitlistQueue(waitlist),
		activeByClient: make(map[int64]*domain.Reservation, len(active)),
	}

	loaded := make([]*domain.Reservation, len(active))
	copy(loaded, active)
	sort.SliceStable(loaded, func(i, j int) bool { return loaded[i].ID < loaded[j].ID })

	for _, r := range loaded {
		if !r.IsActive() || r.SessionID != info.ID {
			continue
		}
		if _, dup := s.activeByClient[r.ClientID]; dup {
			return nil, fmt.Errorf("%w: session=%d client=%d holds two active reservations",
				ErrInvariantViolation, info.ID, r.ClientID)
		}
		s.active = append(s.active, r)
		s.activeByClient[r.ClientID] = r
	}

	if len(s.active) > info.Capacity {
		return nil, fmt.Errorf("%w: session=%d has %d active reservations for capacity %d",
			ErrInvariantViolation, info.ID, len(s.active), info.Capacity)
	}

	s.capacity = NewCapacityTracker(info.Capacity, len(s.active))
	return s, nil
}

// Info возвращает данные занятия
func (s *Session) Info() *domain.ClassSession {
	return s.info
}

// AvailableSeats свободные места
func (s *Session) AvailableSeats() int {
	return s.capacity.AvailableSeats()
}

// ConfirmedCount подтверждённые брони
func (s *Session) ConfirmedCount() int {
	return s.capacity.Confirmed()
}

// WaitlistSize длина очереди
func (s *Session) WaitlistSize() int {
	return s.waitlist.Size()
}

// Waitlist очередь в порядке продвижения
func (s *Session) Waitlist() []*domain.WaitlistEntry {
	return s.waitlist.Entries()
}

// ActiveReservations активные брони в порядке создания
func (s *Session) ActiveReservations() []*domain.Reservation {
	out := make([]*domain.Reservation, len(s.active))
	copy(out, s.active)
	return out
}

// Changes возвращает накопленные изменения и очищает их
func (s *Session) Changes() Changes {
	c := s.changes
	s.changes = Changes{}
	return c
}

// Reserve обрабатывает запрос клиента на место в занятии
func (s *Session) Reserve(clientID int64, clientPlanID *int64, now time.Time, policy domain.Policy) (*ReserveOutcome, error) {
	// 1. Отменённое занятие не принимает брони
	if s.info.IsCancelled() {
		return nil, ErrSessionCancelled
	}

	// 2. Повторная запись или повторная постановка в очередь
	if _, ok := s.activeByClient[clientID]; ok {
		return nil, &RejectionError{Reason: ReasonDuplicateReservation}
	}
	if pos := s.waitlist.Position(clientID); pos > 0 {
		return nil, &RejectionError{Reason: ReasonDuplicateReservation, WaitlistPosition: pos}
	}

	// 3. Окно бронирования
	if !domain.CanReserve(s.info, now, policy) {
		return nil, &RejectionError{
			Reason:            ReasonOutsideReservationWindow,
			MinutesUntilStart: domain.MinutesUntilStart(s.info, now),
			RequiredMinutes:   policy.ReservationLeadMinutes,
		}
	}

	// 4. Место или очередь
	if s.capacity.TryReserveSeat() {
		reservation := s.newReservation(clientID, clientPlanID, now)
		s.changes.CreatedReservations = append(s.changes.CreatedReservations, reservation)
		return &ReserveOutcome{Kind: Confirmed, Reservation: reservation}, nil
	}

	entry := &domain.WaitlistEntry{
		SessionID:    s.info.ID,
		ClientID:     clientID,
		ClientPlanID: clientPlanID,
		EnqueuedAt:   now,
	}
	if !s.waitlist.Enqueue(entry) {
		// недостижимо: дубликат отсечён на шаге 2
		return nil, &RejectionError{Reason: ReasonDuplicateReservation, WaitlistPosition: s.waitlist.Position(clientID)}
	}
	s.changes.CreatedEntries = append(s.changes.CreatedEntries, entry)

	return &ReserveOutcome{Kind: Waitlisted, Entry: entry, Position: s.waitlist.Size()}, nil
}

// Cancel отменяет бронь клиента и сразу пытается отдать место первому в очереди
func (s *Session) Cancel(reservationID int64, now time.Time, policy domain.Policy) (*CancelOutcome, error) {
	if s.info.IsCancelled() {
		return nil, ErrSessionCancelled
	}

	// 1. Только активная бронь
	reservation := s.findActive(reservationID)
	if reservation == nil {
		return nil, ErrNotFound
	}

	// 2. Классификация по политике
	kind := domain.ClassifyCancellation(s.info, now, policy)
	minutesBefore := domain.MinutesUntilStart(s.info, now)
	cancelledAt := now

	reservation.Status = kind.Status()
	reservation.CancelledAt = &cancelledAt
	reservation.MinutesBeforeStart = &minutesBefore
	reservation.UpdatedAt = now

	s.dropActive(reservation)
	s.changes.UpdatedReservations = append(s.changes.UpdatedReservations, reservation)

	// 3. Освобождаем место
	s.capacity.ReleaseSeat()

	// 4. Продвижение из очереди
	promotion, err := s.Promote(now)
	if err != nil {
		return nil, err
	}

	// 5. Возврат кредита только при своевременной отмене
	outcome := &CancelOutcome{
		Kind:        kind,
		Reservation: reservation,
		Promotion:   promotion,
	}
	if kind == domain.CancellationOnTime {
		s.changes.Refunds = append(s.changes.Refunds, reservation)
		outcome.RefundIssued = true
	}

	return outcome, nil
}

// Promote переводит самую старую запись очереди в подтверждённую бронь
// Одно продвижение на вызов. Пустая очередь - не ошибка (nil, nil).
func (s *Session) Promote(now time.Time) (*Promotion, error) {
	entry, ok := s.waitlist.DequeueFront()
	if !ok {
		return nil, nil
	}

	if !s.capacity.TryReserveSeat() {
		// место должно было освободиться: клиент сохраняет позицию, операция прерывается
		s.waitlist.PushFront(entry)
		return nil, fmt.Errorf("%w: session=%d promote client=%d with %d/%d seats taken",
			ErrInvariantViolation, s.info.ID, entry.ClientID, s.capacity.Confirmed(), s.capacity.Capacity())
	}

	reservation := s.newReservation(entry.ClientID, entry.ClientPlanID, now)
	promotion := &Promotion{Entry: entry, Reservation: reservation}

	s.changes.RemovedEntries = append(s.changes.RemovedEntries, entry)
	s.changes.CreatedReservations = append(s.changes.CreatedReservations, reservation)
	s.changes.Promotions = append(s.changes.Promotions, promotion)

	return promotion, nil
}

// CancelClass отменяет занятие целиком
// Все активные брони отменяются как своевременные с возвратом кредита,
// очередь очищается без продвижений. Переход терминальный.
func (s *Session) CancelClass(now time.Time) (*CancelClassOutcome, error) {
	if s.info.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	status := domain.SessionCancelled
	s.info.Status = status
	s.info.UpdatedAt = now
	s.changes.SessionStatus = &status

	minutesBefore := domain.MinutesUntilStart(s.info, now)
	outcome := &CancelClassOutcome{}

	for _, reservation := range s.ActiveReservations() {
		cancelledAt := now
		mb := minutesBefore

		reservation.Status = domain.ReservationCancelledOnTime
		reservation.CancelledAt = &cancelledAt
		reservation.MinutesBeforeStart = &mb
		reservation.UpdatedAt = now

		s.dropActive(reservation)
		s.capacity.ReleaseSeat()

		s.changes.UpdatedReservations = append(s.changes.UpdatedReservations, reservation)
		s.changes.Refunds = append(s.changes.Refunds, reservation)

		outcome.AffectedReservations = append(outcome.AffectedReservations, reservation)
		outcome.RefundedCount++
	}

	outcome.DiscardedEntries = s.waitlist.Clear()
	s.changes.RemovedEntries = append(s.changes.RemovedEntries, outcome.DiscardedEntries...)

	return outcome, nil
}

// Withdraw убирает клиента из очереди по его желанию
// Отсутствие клиента в очереди - не ошибка.
func (s *Session) Withdraw(clientID int64) (*WithdrawOutcome, error) {
	if s.info.IsCancelled() {
		return nil, ErrSessionCancelled
	}

	entry, ok := s.waitlist.Remove(clientID)
	if !ok {
		return &WithdrawOutcome{Removed: false}, nil
	}

	s.changes.RemovedEntries = append(s.changes.RemovedEntries, entry)
	return &WithdrawOutcome{Removed: true, Entry: entry}, nil
}

func (s *Session) newReservation(clientID int64, clientPlanID *int64, now time.Time) *domain.Reservation {
	reservation := &domain.Reservation{
		SessionID:    s.info.ID,
		ClientID:     clientID,
		ClientPlanID: clientPlanID,
		Status:       domain.ReservationActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.active = append(s.active, reservation)
	s.activeByClient[clientID] = reservation
	return reservation
}

// findActive ищет активную бронь по ID
// Новые брони получают ID при сохранении, до этого их найти нельзя.
func (s *Session) findActive(reservationID int64) *domain.Reservation {
	if reservationID <= 0 {
		return nil
	}
	for _, r := range s.active {
		if r.ID == reservationID {
			return r
		}
	}
	return nil
}

func (s *Session) dropActive(reservation *domain.Reservation) {
	for i, r := range s.active {
		if r == reservation {
			s.active = append(s.active[:i:i], s.active[i+1:]...)
			break
		}
	}
	delete(s.activeByClient, reservation.ClientID)
}
