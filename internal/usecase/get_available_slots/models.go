package get_available_slots

import (
	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64  // ID бизнеса
	ServiceID  int64  // ID услуги
	Date       string // Дата в формате "YYYY-MM-DD" (локальная дата бизнеса)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID int64         // ID бизнеса
	ServiceID  int64         // ID услуги
	Date       string        // Дата, на которую запрашивались слоты
	Timezone   string        // Таймзона, в которой выражены времена слотов
	Slots      []domain.Slot // Список доступных слотов (локальное время)
}
