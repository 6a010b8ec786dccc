package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sessionAt(start time.Time) *ClassSession {
	return &ClassSession{
		ID:        1,
		Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime: "18:00",
		EndTime:   "19:00",
		Capacity:  10,
		Status:    SessionScheduled,
	}
}

func TestMinutesUntilStart(t *testing.T) {
	start := time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)
	session := sessionAt(start)

	assert.Equal(t, 60, MinutesUntilStart(session, start.Add(-60*time.Minute)))
	assert.Equal(t, 59, MinutesUntilStart(session, start.Add(-59*time.Minute-30*time.Second)))
	assert.Equal(t, 0, MinutesUntilStart(session, start))
	assert.Equal(t, -15, MinutesUntilStart(session, start.Add(15*time.Minute)))
}

func TestCanReserve_Boundary(t *testing.T) {
	start := time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)
	session := sessionAt(start)
	policy := Policy{ReservationLeadMinutes: 60, CancellationLeadMinutes: 120}

	assert.True(t, CanReserve(session, start.Add(-60*time.Minute), policy))
	assert.False(t, CanReserve(session, start.Add(-59*time.Minute), policy))
}

func TestClassifyCancellation(t *testing.T) {
	start := time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)
	session := sessionAt(start)
	policy := Policy{ReservationLeadMinutes: 60, CancellationLeadMinutes: 120}

	tests := []struct {
		name   string
		before time.Duration
		want   CancellationKind
	}{
		{name: "well ahead", before: 200 * time.Minute, want: CancellationOnTime},
		{name: "exactly at threshold", before: 120 * time.Minute, want: CancellationOnTime},
		{name: "one minute short", before: 119 * time.Minute, want: CancellationLate},
		{name: "after start", before: -10 * time.Minute, want: CancellationLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCancellation(session, start.Add(-tt.before), policy))
		})
	}
}

func TestCancellationKind_Status(t *testing.T) {
	assert.Equal(t, ReservationCancelledOnTime, CancellationOnTime.Status())
	assert.Equal(t, ReservationCancelledLate, CancellationLate.Status())
}

func TestClassSession_StartsAt(t *testing.T) {
	loc := time.FixedZone("CLT", -3*60*60)
	session := &ClassSession{Date: time.Date(2026, 10, 20, 0, 0, 0, 0, loc), StartTime: "07:30"}

	assert.Equal(t, time.Date(2026, 10, 20, 7, 30, 0, 0, loc), session.StartsAt())
}
