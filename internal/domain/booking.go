package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "PENDING"
	StatusConfirmed           BookingStatus = "CONFIRMED"
	StatusCompleted           BookingStatus = "COMPLETED"
	StatusNoShow              BookingStatus = "NO_SHOW"
	StatusCancelledByClient   BookingStatus = "CANCELLED_BY_CLIENT"
	StatusCancelledByBusiness BookingStatus = "CANCELLED_BY_BUSINESS"
)

// businessTransitions is the transition table for owner/staff actions.
// Terminal states have no outgoing transitions.
var businessTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelledByBusiness},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelledByBusiness},
}

// IsTerminal returns true if no transitions lead out of the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow ||
		s == StatusCancelledByClient || s == StatusCancelledByBusiness
}

// CanTransitionTo returns true if the owner/staff transition from s to target is legal
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range businessTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Customer is the person the appointment is for.
// Bookings are anonymous: no account, just contact details.
type Customer struct {
	FullName string
	Phone    string
	Email    *string
}

// Booking represents a reserved appointment.
// StartAt/EndAt are UTC instants; EndAt = StartAt + service duration
// (the buffer only affects slot spacing, it is never booked itself).
// Bookings are never deleted - terminal states are kept for history.
type Booking struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Status     BookingStatus
	Customer   Customer
	Note       *string

	// SHA-256 hash of the client's manage token; the raw token is never stored
	ManageTokenHash *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelledByClient returns true if the client may still cancel via manage token
func (b *Booking) CanBeCancelledByClient() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// HoursUntilStart returns the number of hours between now and the appointment start
func (b *Booking) HoursUntilStart(now time.Time) float64 {
	return b.StartAt.Sub(now).Hours()
}

// BusinessBookingsFilter is the filter for listing a business's bookings
type BusinessBookingsFilter struct {
	BusinessID      int64
	From            *time.Time     // period start (UTC instant), optional
	To              *time.Time     // period end (UTC instant, exclusive), optional
	Status          *BookingStatus // optional status filter
	IncludeInactive bool           // include cancelled and no-show bookings
}
