package run_reminders

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

type BookingsService interface {
	RunReminders(ctx context.Context) (*models.RemindersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
