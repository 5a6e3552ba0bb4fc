package domain

import "time"

// BookingPolicies are the per-business rules applied by the availability
// engine and the booking lifecycle
type BookingPolicies struct {
	// AutoConfirm makes new public bookings start as CONFIRMED instead of PENDING
	AutoConfirm bool

	// CancelWindowHours is the minimum lead time for client cancellation (0 = unrestricted)
	CancelWindowHours int

	// MinLeadTimeMinutes hides same-day slots starting sooner than this
	MinLeadTimeMinutes int
}

// Business represents a service business (salon, clinic, studio)
type Business struct {
	ID       int64
	Name     string
	Slug     string
	Phone    string
	Email    *string
	Address  string
	Timezone string // IANA identifier, e.g. "Europe/Skopje"

	Policies BookingPolicies

	// EmailNotifications enables customer-facing emails for this business
	EmailNotifications bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
