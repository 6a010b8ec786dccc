package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestNew_Defaults(t *testing.T) {
	l := New(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), Options{}, nopLogger{})

	assert.Equal(t, 10*time.Second, l.opts.TTL)
	assert.Equal(t, 25*time.Millisecond, l.opts.RetryDelay)
	assert.Equal(t, 5*time.Second, l.opts.WaitDeadline)
}

func TestLock_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := New(client, Options{WaitDeadline: 500 * time.Millisecond}, nopLogger{})

	unlock, err := l.Lock(context.Background(), "session:1")
	require.Error(t, err)
	assert.Nil(t, unlock)
	assert.ErrorIs(t, err, ErrRedis)
}

func TestNewToken_Unique(t *testing.T) {
	a, err := newToken()
	require.NoError(t, err)
	b, err := newToken()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
