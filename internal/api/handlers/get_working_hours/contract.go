package get_working_hours

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWorkingHours(ctx context.Context, businessID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
