package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeMetrics) ObserveHTTPRequest(_, method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method: method, route: route, status: status})
}

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) Error(format string, _ ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "studio"))
	r.HandleFunc("/api/v1/sessions/{sessionId}/roster", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sessions/42/roster", nil))

	require.Len(t, m.obs, 1)
	assert.Equal(t, "/api/v1/sessions/{sessionId}/roster", m.obs[0].route)
	assert.Equal(t, http.StatusNotFound, m.obs[0].status)
	assert.Equal(t, http.MethodGet, m.obs[0].method)
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "studio"))
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Len(t, m.obs, 1)
	assert.Equal(t, http.StatusOK, m.obs[0].status)
}

func TestRecovery(t *testing.T) {
	log := &fakeLogger{}
	r := mux.NewRouter()
	r.Use(Recovery(log))
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, log.lines, 1)
	assert.True(t, strings.Contains(log.lines[0], "panic"))
}
