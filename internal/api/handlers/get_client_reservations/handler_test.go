package get_client_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetClientActivity(ctx context.Context, req *models.GetClientActivityRequest) (*models.ClientActivityListResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.ClientActivityListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, clientID, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+clientID+"/reservations?"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"clientId": clientID})
	w := httptest.NewRecorder()
	NewHandler(svc, time.UTC, nopLogger{}).Handle(w, r)
	return w
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(5, "active", "2026-10-01", "2026-10-31", "20", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), req.ClientID)
	assert.Equal(t, "active", *req.Status)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *req.From)
	assert.Equal(t, time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), *req.To)
	assert.Equal(t, 20, req.Limit)

	req, err = ToServiceRequest(5, "", "", "", "", time.UTC)
	assert.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.From)

	_, err = ToServiceRequest(5, "", "01.10.2026", "", "", time.UTC)
	assert.Error(t, err)

	_, err = ToServiceRequest(5, "", "", "", "many", time.UTC)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("GetClientActivity", mock.Anything, mock.MatchedBy(func(req *models.GetClientActivityRequest) bool {
		return req.ClientID == 5
	})).Return(&models.ClientActivityListResponse{Reservations: []models.ClientActivityResponse{}}, nil)
	svc.On("GetClientActivity", mock.Anything, mock.MatchedBy(func(req *models.GetClientActivityRequest) bool {
		return req.ClientID == 6
	})).Return(nil, sessions.ErrInvalidInput)

	w := serve(svc, "5", "status=active")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(svc, "6", "status=booked").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "5", "from=yesterday").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "abc", "").Code)
}
