package get_available_slots

import (
	"context"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListByBusinessAndDay(ctx context.Context, businessID int64, dayOfWeek int) ([]*domain.WorkingHours, error)
}

// ClosureRepository интерфейс репозитория закрытий
type ClosureRepository interface {
	ListByBusinessAndDate(ctx context.Context, businessID int64, date string) ([]*domain.Closure, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedBetween(ctx context.Context, businessID int64, from, to time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
