package domain

import (
	"time"

	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
)

// WorkingHours is one open range on one weekday.
// A business may have zero, one or several disjoint rows per day
// (split shifts). The weekly set is replaced wholesale on edit.
type WorkingHours struct {
	ID         int64
	BusinessID int64
	DayOfWeek  int // 0=Sunday .. 6=Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ClosureType distinguishes full-day holidays from partial-day breaks
type ClosureType string

const (
	// ClosureHoliday blocks the entire day; StartTime/EndTime are absent
	ClosureHoliday ClosureType = "HOLIDAY"

	// ClosureBreak blocks only StartTime-EndTime on that day
	ClosureBreak ClosureType = "BREAK"
)

// Closure is a blackout on a specific calendar date
type Closure struct {
	ID         int64
	BusinessID int64
	Type       ClosureType
	Date       string // "YYYY-MM-DD", business-local calendar date
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
