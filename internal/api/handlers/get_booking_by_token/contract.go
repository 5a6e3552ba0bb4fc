package get_booking_by_token

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

type BookingsService interface {
	GetByToken(ctx context.Context, rawToken string) (*models.ManageBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
