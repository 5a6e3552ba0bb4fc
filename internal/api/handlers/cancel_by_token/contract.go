package cancel_by_token

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

type BookingsService interface {
	CancelByToken(ctx context.Context, rawToken string, req *models.CancelByTokenRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
