package create_booking

import (
	"time"

	createBooking "github.com/avlasov/ABP-BookingPlatform/internal/usecase/create_booking"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime,omitempty"`
	Status     string `json:"status"`

	// ManageToken показывается единственный раз - повторно получить его нельзя
	ManageToken string `json:"manageToken,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(businessID int64, manual bool) (*createBooking.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BusinessID:    businessID,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Note:          r.Note,
		Manual:        manual,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		BusinessID:  resp.BusinessID,
		ServiceID:   resp.ServiceID,
		Date:        resp.Date,
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		ManageToken: resp.ManageToken,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
