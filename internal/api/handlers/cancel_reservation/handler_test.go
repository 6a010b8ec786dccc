package cancel_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelReservation.Request) (*cancelReservation.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*cancelReservation.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, id string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/cancel", nil)
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandler_OnTimeWithPromotion(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelReservation.Request{ReservationID: 11}).Return(&cancelReservation.Response{
		Kind:                  domain.CancellationOnTime,
		Reservation:           &domain.Reservation{ID: 11, Status: domain.ReservationCancelledOnTime, MinutesBeforeStart: ptr.Ptr(180)},
		RefundIssued:          true,
		PromotedClientID:      ptr.Ptr(int64(20)),
		PromotedReservationID: ptr.Ptr(int64(12)),
	}, nil)

	w := serve(uc, "11")

	assert.Equal(t, http.StatusOK, w.Code)
	var body CancelReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "cancelled_on_time", body.Outcome)
	assert.True(t, body.RefundIssued)
	assert.Equal(t, int64(20), *body.PromotedClientID)
	assert.Equal(t, 180, *body.Reservation.MinutesBeforeStart)
}

func TestHandler_LateWithoutPromotion(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&cancelReservation.Response{
		Kind:        domain.CancellationLate,
		Reservation: &domain.Reservation{ID: 11, Status: domain.ReservationCancelledLate},
	}, nil)

	w := serve(uc, "11")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "promotedClientId")
	assert.Contains(t, w.Body.String(), `"outcome":"cancelled_late"`)
}

func TestHandler_Errors(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelReservation.Request{ReservationID: 404}).Return(nil, booking.ErrNotFound)
	uc.On("Execute", mock.Anything, &cancelReservation.Request{ReservationID: 500}).Return(nil, errors.New("boom"))

	assert.Equal(t, http.StatusNotFound, serve(uc, "404").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(uc, "500").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "x").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "0").Code)
}
