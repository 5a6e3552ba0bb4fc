package replace_working_hours

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
