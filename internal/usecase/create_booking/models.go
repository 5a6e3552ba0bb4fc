package create_booking

import (
	"time"

	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	Date       string           // Локальная дата бизнеса "YYYY-MM-DD"
	StartTime  types.TimeString // Локальное время начала "HH:MM"

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	CustomerEmail *string // Email клиента (опционально)
	Note          *string // Пожелания клиента (опционально)

	// Manual - бронирование создаёт сам бизнес (по телефонному звонку и т.п.):
	// сразу CONFIRMED, без manage-токена, без проверки публичной доступности
	Manual bool
}

// Response модель ответа на создание бронирования
type Response struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	Date       string
	StartTime  types.TimeString
	EndTime    types.TimeString
	StartAt    time.Time // UTC
	EndAt      time.Time // UTC
	Status     string

	// ManageToken выдаётся единственный раз при публичном создании;
	// хранится только его хэш. Для manual-бронирований пустой
	ManageToken string

	CreatedAt time.Time
}
