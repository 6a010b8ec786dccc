// Package flowtest содержит хранилище в памяти и заглушки окружения
// для тестов операций над занятиями.
package flowtest

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/waitlist"
)

// Store хранилище в памяти с ограничениями схемы PostgreSQL
// Репозитории отдают копии, как и настоящая база.
type Store struct {
	mu     sync.Mutex
	nextID int64

	sessions     map[int64]*domain.ClassSession
	reservations map[int64]*domain.Reservation
	entries      map[int64]*domain.WaitlistEntry

	// Yield уступает планировщику между чтениями, расширяя окно гонки
	Yield bool

	Sessions     *SessionRepo
	Reservations *ReservationRepo
	Waitlist     *WaitlistRepo
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	s := &Store{
		nextID:       1000,
		sessions:     make(map[int64]*domain.ClassSession),
		reservations: make(map[int64]*domain.Reservation),
		entries:      make(map[int64]*domain.WaitlistEntry),
	}
	s.Sessions = &SessionRepo{s: s}
	s.Reservations = &ReservationRepo{s: s}
	s.Waitlist = &WaitlistRepo{s: s}
	return s
}

// AddSession добавляет занятие
func (s *Store) AddSession(cs *domain.ClassSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cs
	if c.Status == "" {
		c.Status = domain.SessionScheduled
	}
	s.sessions[c.ID] = &c
}

// AddReservation добавляет бронь и возвращает её ID
func (s *Store) AddReservation(r *domain.Reservation) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *r
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	if c.Status == "" {
		c.Status = domain.ReservationActive
	}
	s.reservations[c.ID] = &c
	return c.ID
}

// AddEntry ставит клиента в очередь и возвращает ID записи
func (s *Store) AddEntry(e *domain.WaitlistEntry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	s.entries[c.ID] = &c
	return c.ID
}

// Session возвращает копию занятия
func (s *Store) Session(id int64) *domain.ClassSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok := s.sessions[id]; ok {
		c := *cs
		return &c
	}
	return nil
}

// Reservation возвращает копию брони
func (s *Store) Reservation(id int64) *domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reservations[id]; ok {
		c := *r
		return &c
	}
	return nil
}

// ActiveCount число активных броней занятия
func (s *Store) ActiveCount(sessionID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reservations {
		if r.SessionID == sessionID && r.IsActive() {
			n++
		}
	}
	return n
}

// WaitlistClients клиенты в очереди занятия в порядке продвижения
func (s *Store) WaitlistClients(sessionID int64) []int64 {
	entries, _ := s.Waitlist.GetBySession(context.Background(), sessionID)
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ClientID)
	}
	return out
}

func (s *Store) yield() {
	if s.Yield {
		runtime.Gosched()
	}
}

// SessionRepo занятия
type SessionRepo struct{ s *Store }

func (r *SessionRepo) GetByID(_ context.Context, id int64) (*domain.ClassSession, error) {
	if cs := r.s.Session(id); cs != nil {
		return cs, nil
	}
	return nil, session.ErrSessionNotFound
}

func (r *SessionRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSession, error) {
	return r.GetByID(ctx, id)
}

func (r *SessionRepo) UpdateStatus(_ context.Context, id int64, status domain.SessionStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cs, ok := r.s.sessions[id]
	if !ok {
		return session.ErrSessionNotFound
	}
	cs.Status = status
	cs.UpdatedAt = at
	return nil
}

// ReservationRepo брони
type ReservationRepo struct{ s *Store }

func (r *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if res := r.s.Reservation(id); res != nil {
		return res, nil
	}
	return nil, reservation.ErrReservationNotFound
}

func (r *ReservationRepo) GetActiveBySession(_ context.Context, sessionID int64) ([]*domain.Reservation, error) {
	r.s.mu.Lock()
	out := make([]*domain.Reservation, 0)
	for _, res := range r.s.reservations {
		if res.SessionID == sessionID && res.IsActive() {
			c := *res
			out = append(out, &c)
		}
	}
	r.s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	r.s.yield()
	return out, nil
}

func (r *ReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reservations {
		if existing.SessionID == res.SessionID && existing.ClientID == res.ClientID && existing.IsActive() {
			return nil, fmt.Errorf("%w: session=%d client=%d", reservation.ErrDuplicateActive, res.SessionID, res.ClientID)
		}
	}
	r.s.nextID++
	res.ID = r.s.nextID
	c := *res
	r.s.reservations[c.ID] = &c
	return res, nil
}

func (r *ReservationRepo) UpdateCancellation(_ context.Context, res *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.reservations[res.ID]
	if !ok || !existing.IsActive() {
		return fmt.Errorf("%w: id=%d", reservation.ErrNotActive, res.ID)
	}
	c := *res
	r.s.reservations[c.ID] = &c
	return nil
}

func (r *ReservationRepo) GetByClientWithFilter(_ context.Context, filter domain.ClientReservationsFilter) ([]*domain.ClientActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.ClientActivity, 0)
	for _, res := range r.s.reservations {
		if res.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		cs := r.s.sessions[res.SessionID]
		if cs == nil {
			continue
		}
		if filter.From != nil && cs.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && cs.Date.After(*filter.To) {
			continue
		}
		out = append(out, &domain.ClientActivity{
			Reservation: *res,
			SessionDate: cs.Date,
			StartTime:   cs.StartTime,
			EndTime:     cs.EndTime,
			BranchID:    cs.BranchID,
			ServiceName: cs.ServiceName,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// WaitlistRepo очередь ожидания
type WaitlistRepo struct{ s *Store }

func (r *WaitlistRepo) GetBySession(_ context.Context, sessionID int64) ([]*domain.WaitlistEntry, error) {
	r.s.mu.Lock()
	out := make([]*domain.WaitlistEntry, 0)
	for _, e := range r.s.entries {
		if e.SessionID == sessionID {
			c := *e
			out = append(out, &c)
		}
	}
	r.s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnqueuedAt.Equal(out[j].EnqueuedAt) {
			return out[i].EnqueuedAt.Before(out[j].EnqueuedAt)
		}
		return out[i].ID < out[j].ID
	})
	r.s.yield()
	return out, nil
}

func (r *WaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.entries {
		if existing.SessionID == e.SessionID && existing.ClientID == e.ClientID {
			return nil, fmt.Errorf("%w: session=%d client=%d", waitlist.ErrDuplicateEntry, e.SessionID, e.ClientID)
		}
	}
	r.s.nextID++
	e.ID = r.s.nextID
	c := *e
	r.s.entries[c.ID] = &c
	return e, nil
}

func (r *WaitlistRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entries[id]; !ok {
		return waitlist.ErrEntryNotFound
	}
	delete(r.s.entries, id)
	return nil
}
