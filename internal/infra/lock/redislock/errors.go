package redislock

import "errors"

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить за отведённое время
	ErrLockTimeout = errors.New("redislock: lock wait timeout")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("redislock: redis error")
)
