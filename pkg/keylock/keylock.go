package keylock

import (
	"context"
	"sync"
)

// KeyedMutex взаимное исключение по ключу
// Операции над разными ключами не блокируют друг друга.
// Записи удаляются, когда у ключа не остаётся ни владельца, ни ожидающих.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{} // ёмкость 1: занятый слот = захваченный ключ
	refs int
}

// New создает KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock захватывает ключ, ожидая освобождения или отмены контекста
// Возвращает функцию освобождения, повторный вызов которой безопасен
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	e := k.acquireEntry(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.releaseEntry(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.releaseEntry(key, e)
		})
	}, nil
}

// Len возвращает число ключей, по которым есть владельцы или ожидающие
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func (k *KeyedMutex) acquireEntry(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyedMutex) releaseEntry(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}
