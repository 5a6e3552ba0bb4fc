package models

import (
	"errors"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования владельцем бизнеса
type UpdateStatusRequest struct {
	BusinessID         int64   `json:"businessId"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelByTokenRequest запрос клиента на отмену по manage-токену
type CancelByTokenRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	BusinessID      int64      `json:"businessId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, исключительно (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования (вид для владельца бизнеса)
type BookingResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	ServiceID  int64     `json:"serviceId"`
	StartAt    time.Time `json:"startAt"` // UTC
	EndAt      time.Time `json:"endAt"`   // UTC
	Status     string    `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Note          *string `json:"note,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ManageBookingResponse ответ для клиента по manage-токену.
// Контактные данные не включаются - токен этого не требует,
// а время показывается в местном времени бизнеса
type ManageBookingResponse struct {
	BusinessName string `json:"businessName"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`      // "YYYY-MM-DD", местная дата
	StartTime    string `json:"startTime"` // "HH:MM", местное время
	Status       string `json:"status"`
	CanCancel    bool   `json:"canCancel"`
}

// RemindersResponse результат прогона напоминаний
type RemindersResponse struct {
	Sent int `json:"sent"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		ServiceID:          b.ServiceID,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		Status:             string(b.Status),
		CustomerName:       b.Customer.FullName,
		CustomerPhone:      b.Customer.Phone,
		CustomerEmail:      b.Customer.Email,
		Note:               b.Note,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
