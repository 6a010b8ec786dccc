package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	return rec.Body.String()
}

func TestMetrics_BookingOutcomes(t *testing.T) {
	m := New("studio-booking")

	m.IncBookingOutcome("reserve", "confirmed", "")
	m.IncBookingOutcome("reserve", "confirmed", "")
	m.IncBookingOutcome("reserve", "rejected", "SessionCancelled")

	body := scrape(t, m)
	assert.Contains(t, body, `booking_outcomes_total{app="studio-booking",operation="reserve",outcome="confirmed",reason=""} 2`)
	assert.Contains(t, body, `booking_outcomes_total{app="studio-booking",operation="reserve",outcome="rejected",reason="SessionCancelled"} 1`)
}

func TestMetrics_TwoInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("b")
	})
}

func TestMetrics_HTTPAndInvariants(t *testing.T) {
	m := New("studio-booking")
	m.ObserveHTTPRequest("studio-booking", http.MethodPost, "/api/v1/sessions/{sessionId}/reservations", 201, 5*time.Millisecond)
	m.IncInvariantViolation("promote")

	body := scrape(t, m)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `booking_invariant_violations_total{app="studio-booking",operation="promote"} 1`)
}
