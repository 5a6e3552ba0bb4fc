package create_closure

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateClosure(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
