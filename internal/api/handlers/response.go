package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
)

const (
	msgInternalError = "внутренняя ошибка сервера"

	msgSessionCancelled     = "занятие отменено студией"
	msgDuplicateActive      = "клиент уже записан на это занятие"
	msgDuplicateWaitlisted  = "клиент уже стоит в очереди на это занятие, позиция %d"
	msgOutsideWindow        = "запись закрыта: до начала %d мин., запись закрывается за %d мин."
	msgReservationNotFound  = "бронирование не найдено или уже отменено"
	msgSessionAlreadyClosed = "занятие уже отменено"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string         `json:"error"`
	Reason  string         `json:"reason,omitempty"`  // код отказа движка бронирований
	Details map[string]int `json:"details,omitempty"` // числовой контекст отказа
}

// RespondJSON пишет JSON ответ с кодом status
// nil payload даёт пустое тело
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с произвольным кодом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnprocessableEntity(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondRejection переводит отказ движка бронирований в HTTP ответ
// 409 - конфликт состояния, 422 - нарушение политики, 404 - нет брони или занятия
func RespondRejection(w http.ResponseWriter, rej *booking.RejectionError) {
	resp := ErrorResponse{Reason: string(rej.Reason)}
	status := http.StatusConflict

	switch rej.Reason {
	case booking.ReasonSessionCancelled:
		resp.Error = msgSessionCancelled

	case booking.ReasonDuplicateReservation:
		resp.Error = msgDuplicateActive
		if rej.WaitlistPosition > 0 {
			resp.Error = fmt.Sprintf(msgDuplicateWaitlisted, rej.WaitlistPosition)
			resp.Details = map[string]int{"waitlistPosition": rej.WaitlistPosition}
		}

	case booking.ReasonOutsideReservationWindow:
		status = http.StatusUnprocessableEntity
		resp.Error = fmt.Sprintf(msgOutsideWindow, rej.MinutesUntilStart, rej.RequiredMinutes)
		resp.Details = map[string]int{
			"minutesUntilStart": rej.MinutesUntilStart,
			"requiredMinutes":   rej.RequiredMinutes,
			"minutesShort":      rej.MinutesShort(),
		}

	case booking.ReasonNotFound:
		status = http.StatusNotFound
		resp.Error = msgReservationNotFound

	case booking.ReasonAlreadyCancelled:
		resp.Error = msgSessionAlreadyClosed

	default:
		resp.Error = rej.Error()
	}

	RespondJSON(w, status, resp)
}

// DecodeJSON читает тело запроса в dst
// Пустое тело и неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}
