package create_booking

import (
	"context"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	slotsUC "github.com/avlasov/ABP-BookingPlatform/internal/usecase/get_available_slots"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotsProvider пересчитывает доступные слоты внутри транзакции создания -
// выбранный слот проверяется на актуальность непосредственно перед вставкой
type SlotsProvider interface {
	Execute(ctx context.Context, req *slotsUC.Request) (*slotsUC.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer интерфейс для отправки писем клиентам
type Mailer interface {
	Send(to, subject, body string) error
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
