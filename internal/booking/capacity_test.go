package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityTracker(t *testing.T) {
	c := NewCapacityTracker(2, 0)
	assert.Equal(t, 2, c.AvailableSeats())

	assert.True(t, c.TryReserveSeat())
	assert.True(t, c.TryReserveSeat())
	assert.False(t, c.TryReserveSeat())
	assert.Equal(t, 2, c.Confirmed())
	assert.Equal(t, 0, c.AvailableSeats())

	c.ReleaseSeat()
	assert.Equal(t, 1, c.AvailableSeats())
}

func TestCapacityTracker_ReleaseFlooredAtZero(t *testing.T) {
	c := NewCapacityTracker(3, 0)
	c.ReleaseSeat()

	assert.Equal(t, 0, c.Confirmed())
	assert.Equal(t, 3, c.AvailableSeats())
}

func TestCapacityTracker_AvailableNeverNegative(t *testing.T) {
	c := NewCapacityTracker(1, 4)

	assert.Equal(t, 0, c.AvailableSeats())
	assert.False(t, c.TryReserveSeat())
	assert.Equal(t, 4, c.Confirmed())
}
