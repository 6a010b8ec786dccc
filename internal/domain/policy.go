package domain

import (
	"math"
	"time"
)

// Policy holds the studio-wide lead time thresholds
type Policy struct {
	ReservationLeadMinutes  int // minimum minutes before start to accept a reservation
	CancellationLeadMinutes int // minimum minutes before start for an on-time cancellation
	UpdatedAt               time.Time
}

// DefaultPolicy returns the policy used when the store holds none
func DefaultPolicy() Policy {
	return Policy{
		ReservationLeadMinutes:  DefaultReservationLeadMinutes,
		CancellationLeadMinutes: DefaultCancellationLeadMinutes,
	}
}

// CancellationKind classifies a client cancellation against the policy
type CancellationKind string

const (
	CancellationOnTime CancellationKind = "on_time"
	CancellationLate   CancellationKind = "late"
)

// MinutesUntilStart returns whole minutes between now and the session start.
// Negative once the session has started.
func MinutesUntilStart(session *ClassSession, now time.Time) int {
	return int(math.Floor(session.StartsAt().Sub(now).Minutes()))
}

// CanReserve reports whether now is early enough to reserve a seat
func CanReserve(session *ClassSession, now time.Time, policy Policy) bool {
	return MinutesUntilStart(session, now) >= policy.ReservationLeadMinutes
}

// ClassifyCancellation decides whether cancelling now is on time or late
func ClassifyCancellation(session *ClassSession, now time.Time, policy Policy) CancellationKind {
	if MinutesUntilStart(session, now) >= policy.CancellationLeadMinutes {
		return CancellationOnTime
	}
	return CancellationLate
}

// Status maps the classification onto the reservation status it produces
func (k CancellationKind) Status() ReservationStatus {
	if k == CancellationOnTime {
		return ReservationCancelledOnTime
	}
	return ReservationCancelledLate
}
