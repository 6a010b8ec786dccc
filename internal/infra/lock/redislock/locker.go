package redislock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "studio:lock:"

// Снимаем блокировку, только если она всё ещё наша
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Options параметры блокировки
type Options struct {
	TTL          time.Duration // время жизни ключа, страхует от упавшей реплики
	RetryDelay   time.Duration // пауза между попытками
	WaitDeadline time.Duration // сколько ждать освобождения
}

// Locker блокировка занятия, общая для всех реплик сервиса
type Locker struct {
	client redis.UniversalClient
	opts   Options
	log    Logger
}

// New создает блокировку поверх клиента Redis
func New(client redis.UniversalClient, opts Options, log Logger) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 25 * time.Millisecond
	}
	if opts.WaitDeadline <= 0 {
		opts.WaitDeadline = 5 * time.Second
	}
	return &Locker{client: client, opts: opts, log: log}
}

// Lock ждёт блокировку ключа и возвращает функцию её снятия
// Функция снятия идемпотентна.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", ErrRedis, err)
	}

	redisKey := keyPrefix + key
	waitCtx, cancel := context.WithTimeout(ctx, l.opts.WaitDeadline)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.opts.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: SETNX %s: %v", ErrRedis, redisKey, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: key=%s after %s", ErrLockTimeout, key, l.opts.WaitDeadline)
		case <-time.After(l.opts.RetryDelay):
		}
	}
}

func (l *Locker) unlockFunc(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(redisKey, token) })
	}
}

func (l *Locker) release(redisKey, token string) {
	// Контекст запроса к этому моменту может быть отменён, снимаем блокировку независимо
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := unlockScript.Run(ctx, l.client, []string{redisKey}, token).Int()
	if err != nil {
		l.log.Error("RedisLock: failed to release %s: %v", redisKey, err)
		return
	}
	if res == 0 {
		l.log.Warn("RedisLock: %s expired before release", redisKey)
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
