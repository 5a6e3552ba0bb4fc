package create_manual_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	createBooking "github.com/avlasov/ABP-BookingPlatform/internal/usecase/create_booking"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный интервал пересекается с существующим бронированием"
	msgServiceNotFound    = "услуга не найдена"
	msgBusinessNotFound   = "бизнес не найден"
)

// CreateManualBookingRequest HTTP request model
type CreateManualBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model (без manage-токена)
type BookingResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/manual
//
// Бронирование, которое бизнес заводит сам (звонок, визит без записи):
// сразу CONFIRMED, без manage-токена, может выходить за рамки публичного
// расписания - но не пересекаться с существующими бронированиями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	var req CreateManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/manual - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("POST /bookings/manual - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createBooking.Request{
		BusinessID:    businessID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		StartTime:     startTime,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Note:          req.Note,
		Manual:        true,
	})
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/manual - Slot taken: business=%d, date=%s, time=%s",
				businessID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/manual - Service not found: business=%d, service=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/manual - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/manual - Failed: business=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/manual - Booking created: booking_id=%d, business=%d", result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, &BookingResponse{
		ID:         result.ID,
		BusinessID: result.BusinessID,
		ServiceID:  result.ServiceID,
		Date:       result.Date,
		StartTime:  result.StartTime.String(),
		EndTime:    result.EndTime.String(),
		Status:     result.Status,
		CreatedAt:  result.CreatedAt.Format(time.RFC3339),
	})
}
