package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: broker connection failed")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("events: publish failed")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: marshal failed")
)
