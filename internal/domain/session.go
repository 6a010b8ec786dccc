package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// SessionStatus represents the lifecycle status of a class session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCancelled SessionStatus = "cancelled"
)

// ClassSession represents a single scheduled occurrence of a class
type ClassSession struct {
	ID        int64
	ServiceID int64
	BranchID  int64
	Date      time.Time // calendar day, midnight in the studio time zone
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Status    SessionStatus

	// Denormalized data for read models
	ServiceName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the session was cancelled by the studio
func (s *ClassSession) IsCancelled() bool {
	return s.Status == SessionCancelled
}

// StartsAt returns the start instant of the session.
// Falls back to the session day midnight if the start time is malformed;
// repositories reject such rows on load.
func (s *ClassSession) StartsAt() time.Time {
	startsAt, err := s.StartTime.On(s.Date)
	if err != nil {
		return s.Date
	}
	return startsAt
}

// CalendarDay returns midnight of the given calendar day in loc.
// DATE columns come back from the driver as UTC midnight.
func CalendarDay(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}
