package sessionflow

import "errors"

var (
	// ErrLock возвращается, когда не удалось получить блокировку занятия
	ErrLock = errors.New("sessionflow: failed to acquire session lock")

	// ErrLoad возвращается при ошибке загрузки состояния занятия
	ErrLoad = errors.New("sessionflow: failed to load session state")

	// ErrPersist возвращается при ошибке сохранения изменений
	ErrPersist = errors.New("sessionflow: failed to persist changes")
)
