package clientservice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/clients/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"full_name":"Ana Ruiz","status":"active"}`)
	})
	mux.HandleFunc("/internal/clients/8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":8,"full_name":"Luis Gil","status":"inactive"}`)
	})
	mux.HandleFunc("/internal/clients/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetClient(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, nopLogger{})

	client, err := c.GetClient(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", client.FullName)
	assert.True(t, client.IsActive())

	inactive, err := c.GetClient(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive())

	_, err = c.GetClient(context.Background(), 404)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = c.GetClient(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GracefulDegradation(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := c.GetClientWithGracefulDegradation(context.Background(), 404)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = c.GetClientWithGracefulDegradation(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	unreachable := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{})
	_, err = unreachable.GetClientWithGracefulDegradation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
