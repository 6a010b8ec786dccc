package domain

import "time"

// WaitlistEntry represents a client waiting for a seat in a full session.
// Entries of one session are ordered by EnqueuedAt, ties broken by ID.
type WaitlistEntry struct {
	ID           int64
	SessionID    int64
	ClientID     int64
	ClientPlanID *int64
	EnqueuedAt   time.Time
}
