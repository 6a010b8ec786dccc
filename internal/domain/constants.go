package domain

// Default policy values
const (
	DefaultReservationLeadMinutes  = 60  // 1 hour
	DefaultCancellationLeadMinutes = 120 // 2 hours
)

// Business validation constants
const (
	MinLeadMinutes       = 0
	MaxLeadMinutes       = 10080 // 1 week
	DefaultActivityLimit = 100
	MaxActivityLimit     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReservationStatuses список всех статусов бронирования
// Используется для валидации входных фильтров
var ReservationStatuses = []ReservationStatus{
	ReservationActive,
	ReservationCancelledOnTime,
	ReservationCancelledLate,
	ReservationAttended,
	ReservationNoShow,
}

// ParseReservationStatus конвертирует строку в ReservationStatus с валидацией
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, status := range ReservationStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
