package reserve_class

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	reserveClass "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reserve_class"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *reserveClass.Request) (*reserveClass.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*reserveClass.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, uc *mockUseCase, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/reservations", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"sessionId": sessionID})
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandler_Confirmed(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &reserveClass.Request{SessionID: 7, ClientID: 3}).Return(&reserveClass.Response{
		Outcome: booking.Confirmed,
		Reservation: &domain.Reservation{
			ID: 100, SessionID: 7, ClientID: 3, Status: domain.ReservationActive,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		},
	}, nil)

	w := serve(t, uc, "7", `{"clientId": 3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body ReserveClassResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body.Outcome)
	require.NotNil(t, body.Reservation)
	assert.Equal(t, int64(100), body.Reservation.ID)
	uc.AssertExpectations(t)
}

func TestHandler_Waitlisted(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&reserveClass.Response{
		Outcome:  booking.Waitlisted,
		Entry:    &domain.WaitlistEntry{ID: 5, SessionID: 7, ClientID: 3, EnqueuedAt: time.Now()},
		Position: 2,
	}, nil)

	w := serve(t, uc, "7", `{"clientId": 3}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	var body ReserveClassResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "waitlisted", body.Outcome)
	assert.Equal(t, 2, body.Position)
	assert.Nil(t, body.Reservation)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"duplicate", booking.ErrDuplicateReservation, http.StatusConflict, "DuplicateReservation"},
		{"cancelled", booking.ErrSessionCancelled, http.StatusConflict, "SessionCancelled"},
		{
			"window",
			&booking.RejectionError{Reason: booking.ReasonOutsideReservationWindow, MinutesUntilStart: 30, RequiredMinutes: 60},
			http.StatusUnprocessableEntity,
			"OutsideReservationWindow",
		},
		{"unknown session", booking.ErrNotFound, http.StatusNotFound, ""},
		{"client not found", reserveClass.ErrClientNotFound, http.StatusNotFound, ""},
		{"client inactive", reserveClass.ErrClientInactive, http.StatusUnprocessableEntity, ""},
		{"invalid", reserveClass.ErrInvalidInput, http.StatusBadRequest, ""},
		{"internal", errors.Join(reserveClass.ErrInternal, booking.ErrInvariantViolation), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(t, uc, "7", `{"clientId": 3}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}

func TestHandler_BadRequest(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusBadRequest, serve(t, uc, "abc", `{"clientId": 3}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, uc, "7", `{"clientId":`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
