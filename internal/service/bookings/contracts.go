package bookings

import (
	"context"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByManageTokenHash(ctx context.Context, tokenHash string) (*domain.Booking, error)
	ListByBusiness(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
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
