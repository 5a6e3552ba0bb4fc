package get_available_slots

import (
	"fmt"

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

	return nil
}
