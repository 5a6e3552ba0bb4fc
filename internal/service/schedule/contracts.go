package schedule

import (
	"context"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.WorkingHours, error)
	ReplaceForBusiness(ctx context.Context, businessID int64, hours []*domain.WorkingHours) error
}

// ClosureRepository интерфейс репозитория закрытий
type ClosureRepository interface {
	Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	ListByBusiness(ctx context.Context, businessID int64, fromDate string) ([]*domain.Closure, error)
	Delete(ctx context.Context, businessID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
