package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	createBooking "github.com/avlasov/ABP-BookingPlatform/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
)

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

// Handle POST /api/v1/businesses/{businessId}/bookings
//
// Публичное создание бронирования анонимным клиентом. В ответе единственный
// раз выдается manage-токен для самообслуживания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, false)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: business=%d, date=%s, time=%s",
				businessID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: business=%d, service=%d", businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: business=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, business=%d, status=%s",
		result.ID, businessID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
