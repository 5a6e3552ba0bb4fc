package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelledByBusiness, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},

		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelledByBusiness, true},
		{StatusConfirmed, StatusPending, false},

		// Конечные статусы исходящих переходов не имеют
		{StatusCompleted, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
		{StatusCancelledByClient, StatusConfirmed, false},
		{StatusCancelledByBusiness, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.True(t, StatusCancelledByClient.IsTerminal())
	assert.True(t, StatusCancelledByBusiness.IsTerminal())
}

func TestBookingIsActive(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), string(status))
	}
	for _, status := range InactiveStatuses {
		b := &Booking{Status: status}
		assert.False(t, b.IsActive(), string(status))
	}
}

func TestCanBeCancelledByClient(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelledByClient())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelledByClient())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelledByClient())
	assert.False(t, (&Booking{Status: StatusCancelledByClient}).CanBeCancelledByClient())
}

func TestHoursUntilStart(t *testing.T) {
	now := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartAt: now.Add(36 * time.Hour)}

	assert.InDelta(t, 36.0, b.HoursUntilStart(now), 0.001)

	past := &Booking{StartAt: now.Add(-2 * time.Hour)}
	assert.InDelta(t, -2.0, past.HoursUntilStart(now), 0.001)
}

func TestSlotStrideMinutes(t *testing.T) {
	s := &Service{DurationMinutes: 30, BufferMinutes: 15}
	assert.Equal(t, 45, s.SlotStrideMinutes())

	noBuffer := &Service{DurationMinutes: 60}
	assert.Equal(t, 60, noBuffer.SlotStrideMinutes())
}
