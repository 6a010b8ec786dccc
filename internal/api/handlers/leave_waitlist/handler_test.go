package leave_waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	leaveWaitlist "github.com/m04kA/SMC-StudioBookingService/internal/usecase/leave_waitlist"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *leaveWaitlist.Request) (*leaveWaitlist.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*leaveWaitlist.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, sessionID, clientID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+sessionID+"/waitlist/"+clientID, nil)
	r = mux.SetURLVars(r, map[string]string{"sessionId": sessionID, "clientId": clientID})
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandler(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &leaveWaitlist.Request{SessionID: 1, ClientID: 2}).
		Return(&leaveWaitlist.Response{Removed: true}, nil)
	uc.On("Execute", mock.Anything, &leaveWaitlist.Request{SessionID: 1, ClientID: 3}).
		Return(&leaveWaitlist.Response{Removed: false}, nil)
	uc.On("Execute", mock.Anything, &leaveWaitlist.Request{SessionID: 9, ClientID: 2}).
		Return(nil, booking.ErrSessionCancelled)

	w := serve(uc, "1", "2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":true}`, w.Body.String())

	w = serve(uc, "1", "3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":false}`, w.Body.String())

	assert.Equal(t, http.StatusConflict, serve(uc, "9", "2").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "1", "x").Code)
}
