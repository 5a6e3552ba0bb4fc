package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinBufferMinutes          = 0
	MaxCancelWindowHours      = 720 // 30 days
	MaxNoteLength             = 500
	MaxCancellationReasonLen  = 500
	MinDayOfWeek              = 0
	MaxDayOfWeek              = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that occupy a physical slot.
// The storage-level overlap guard is keyed on exactly this set.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses are terminal statuses that free the slot
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByClient,
	StatusCancelledByBusiness,
}

// AllStatuses lists every valid booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByClient,
	StatusCancelledByBusiness,
}
