package booking

import (
	"sort"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// WaitlistQueue очередь ожидания одного занятия, строго FIFO
// Не потокобезопасна: все вызовы выполняются под блокировкой занятия
type WaitlistQueue struct {
	entries []*domain.WaitlistEntry
}

// NewWaitlistQueue восстанавливает очередь из хранилища
// Порядок: EnqueuedAt, при равенстве - ID
func NewWaitlistQueue(entries []*domain.WaitlistEntry) *WaitlistQueue {
	sorted := make([]*domain.WaitlistEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EnqueuedAt.Equal(sorted[j].EnqueuedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].EnqueuedAt.Before(sorted[j].EnqueuedAt)
	})
	return &WaitlistQueue{entries: sorted}
}

// Enqueue добавляет запись в конец очереди
// Возвращает false без изменений, если клиент уже в очереди.
// EnqueuedAt не может быть раньше последней записи, чтобы порядок в БД совпадал с очередью.
func (q *WaitlistQueue) Enqueue(entry *domain.WaitlistEntry) bool {
	if q.Contains(entry.ClientID) {
		return false
	}
	if n := len(q.entries); n > 0 {
		if last := q.entries[n-1].EnqueuedAt; entry.EnqueuedAt.Before(last) {
			entry.EnqueuedAt = last
		}
	}
	q.entries = append(q.entries, entry)
	return true
}

// DequeueFront извлекает самую старую запись
func (q *WaitlistQueue) DequeueFront() (*domain.WaitlistEntry, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	front := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	return front, true
}

// PushFront возвращает запись в начало очереди (откат неудачного продвижения)
func (q *WaitlistQueue) PushFront(entry *domain.WaitlistEntry) {
	q.entries = append([]*domain.WaitlistEntry{entry}, q.entries...)
}

// Remove удаляет запись клиента, если она есть
func (q *WaitlistQueue) Remove(clientID int64) (*domain.WaitlistEntry, bool) {
	for i, e := range q.entries {
		if e.ClientID == clientID {
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

// Contains проверяет, стоит ли клиент в очереди
func (q *WaitlistQueue) Contains(clientID int64) bool {
	return q.Position(clientID) > 0
}

// Position возвращает позицию клиента (с 1), 0 если клиента нет
func (q *WaitlistQueue) Position(clientID int64) int {
	for i, e := range q.entries {
		if e.ClientID == clientID {
			return i + 1
		}
	}
	return 0
}

// Size возвращает длину очереди
func (q *WaitlistQueue) Size() int {
	return len(q.entries)
}

// Entries возвращает копию очереди в порядке продвижения
func (q *WaitlistQueue) Entries() []*domain.WaitlistEntry {
	out := make([]*domain.WaitlistEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Clear очищает очередь и возвращает удалённые записи
func (q *WaitlistQueue) Clear() []*domain.WaitlistEntry {
	removed := q.entries
	q.entries = nil
	return removed
}
