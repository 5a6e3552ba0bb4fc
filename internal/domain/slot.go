package domain

import "github.com/avlasov/ABP-BookingPlatform/pkg/types"

// Slot is a bookable (start, end) pair on a given date, sized to a
// service's duration. Times are business-local "HH:MM".
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
