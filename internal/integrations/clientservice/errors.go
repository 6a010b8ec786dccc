package clientservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент студии не найден
	ErrClientNotFound = errors.New("clientservice: client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("clientservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Сервис клиентов недоступен, проверка клиента пропускается
	ErrServiceDegraded = errors.New("clientservice unavailable: graceful degradation applied")
)
