package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrInvalidRow возвращается, когда строка занятия не проходит проверку (время начала, вместимость)
	ErrInvalidRow = errors.New("session.repository: invalid session row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
