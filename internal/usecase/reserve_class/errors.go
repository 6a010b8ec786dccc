package reserve_class

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_class: invalid input data")

	// ErrClientNotFound возвращается, когда клиент неизвестен сервису клиентов
	ErrClientNotFound = errors.New("reserve_class: client not found")

	// ErrClientInactive возвращается, когда клиент деактивирован
	ErrClientInactive = errors.New("reserve_class: client is inactive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_class: internal error")
)
