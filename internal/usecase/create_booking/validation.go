package create_booking

import (
	"fmt"
	"strings"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if err := tztime.ValidDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.CustomerEmail != nil && !strings.Contains(*req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}
