package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrDuplicateEntry возвращается, когда клиент уже стоит в очереди занятия
	ErrDuplicateEntry = errors.New("waitlist.repository: client already waitlisted")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
