package get_policy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context) (*models.PolicyResponse, error) {
	args := m.Called(ctx)
	if resp, ok := args.Get(0).(*models.PolicyResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil))
	return w
}

func TestHandler_Default(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything).
		Return(&models.PolicyResponse{ReservationLeadMinutes: 60, CancellationLeadMinutes: 120, IsDefault: true}, nil)

	w := serve(svc)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isDefault":true`)
	assert.Contains(t, w.Body.String(), `"cancellationLeadMinutes":120`)
}

func TestHandler_Error(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything).Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, serve(svc).Code)
}
