package get_available_slots

import (
	getAvailableSlots "github.com/avlasov/ABP-BookingPlatform/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00", местное время бизнеса
	EndTime   string `json:"endTime"`   // "10:30"
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	BusinessID int64          `json:"businessId"`
	ServiceID  int64          `json:"serviceId"`
	Date       string         `json:"date"`
	Timezone   string         `json:"timezone,omitempty"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date,
		Timezone:   resp.Timezone,
		Slots:      slots,
	}
}

// EmptyResponse пустой список слотов - ответ по умолчанию при любой
// ошибке вычисления доступности
func EmptyResponse(businessID, serviceID int64, date string) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		Slots:      []SlotResponse{},
	}
}
