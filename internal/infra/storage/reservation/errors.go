package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrNotActive возвращается при попытке отменить неактивное бронирование
	ErrNotActive = errors.New("reservation.repository: reservation is not active")

	// ErrDuplicateActive возвращается, когда у клиента уже есть активная бронь на занятие
	ErrDuplicateActive = errors.New("reservation.repository: client already holds an active reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
