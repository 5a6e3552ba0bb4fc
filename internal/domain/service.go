package domain

import "time"

// Service represents an offered unit of work owned by one business.
// Services are soft-deleted via IsActive=false so past bookings keep
// their reference.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64
	BufferMinutes   int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SlotStrideMinutes is the spacing between successive candidate slot
// starts: duration plus the idle buffer that follows each booking
func (s *Service) SlotStrideMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
