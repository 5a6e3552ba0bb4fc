package models

import (
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

// Request модели

// WorkingHoursEntry один рабочий интервал в недельном расписании
type WorkingHoursEntry struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// ReplaceWorkingHoursRequest запрос на полную замену недельного расписания
type ReplaceWorkingHoursRequest struct {
	BusinessID int64               `json:"businessId"`
	Hours      []WorkingHoursEntry `json:"hours"`
}

// CreateClosureRequest запрос на создание закрытия
type CreateClosureRequest struct {
	BusinessID int64   `json:"businessId"`
	Type       string  `json:"type"` // "HOLIDAY" | "BREAK"
	Date       string  `json:"date"` // "YYYY-MM-DD"
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	Note       *string `json:"note,omitempty"`
}

// ListClosuresRequest запрос на получение закрытий бизнеса
type ListClosuresRequest struct {
	BusinessID int64  `json:"businessId"`
	FromDate   string `json:"fromDate,omitempty"` // "YYYY-MM-DD", пусто - все
}

// Response модели

// WorkingHoursResponse ответ с недельным расписанием
type WorkingHoursResponse struct {
	Hours []WorkingHoursEntry `json:"hours"`
}

// ClosureResponse ответ с данными закрытия
type ClosureResponse struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Note      *string `json:"note,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ClosureListResponse ответ со списком закрытий
type ClosureListResponse struct {
	Closures []ClosureResponse `json:"closures"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует domain модели в DTO
func FromDomainWorkingHours(hours []*domain.WorkingHours) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		Hours: make([]WorkingHoursEntry, 0, len(hours)),
	}
	for _, wh := range hours {
		resp.Hours = append(resp.Hours, WorkingHoursEntry{
			DayOfWeek: wh.DayOfWeek,
			StartTime: wh.StartTime.String(),
			EndTime:   wh.EndTime.String(),
		})
	}
	return resp
}

// FromDomainClosure конвертирует domain модель в DTO
func FromDomainClosure(c *domain.Closure) *ClosureResponse {
	if c == nil {
		return nil
	}

	resp := &ClosureResponse{
		ID:        c.ID,
		Type:      string(c.Type),
		Date:      c.Date,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
	}
	if c.StartTime != nil {
		s := c.StartTime.String()
		resp.StartTime = &s
	}
	if c.EndTime != nil {
		e := c.EndTime.String()
		resp.EndTime = &e
	}
	return resp
}

// FromDomainClosureList конвертирует список domain моделей в DTO
func FromDomainClosureList(closures []*domain.Closure) *ClosureListResponse {
	resp := &ClosureListResponse{
		Closures: make([]ClosureResponse, 0, len(closures)),
	}
	for _, c := range closures {
		if cr := FromDomainClosure(c); cr != nil {
			resp.Closures = append(resp.Closures, *cr)
		}
	}
	return resp
}
