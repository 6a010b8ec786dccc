package update_policy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.PolicyResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/policy", strings.NewReader(body))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdatePolicyRequest) bool {
		return req.ReservationLeadMinutes != nil && *req.ReservationLeadMinutes == 30
	})).Return(&models.PolicyResponse{ReservationLeadMinutes: 30, CancellationLeadMinutes: 120}, nil)
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdatePolicyRequest) bool {
		return req.ReservationLeadMinutes != nil && *req.ReservationLeadMinutes < 0
	})).Return(nil, fmt.Errorf("%w: out of range", policy.ErrInvalidInput))

	w := serve(svc, `{"reservationLeadMinutes": 30}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reservationLeadMinutes":30`)

	assert.Equal(t, http.StatusBadRequest, serve(svc, `{"reservationLeadMinutes": -1}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, `not json`).Code)
}
