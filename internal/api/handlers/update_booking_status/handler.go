package update_booking_status

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	bookingsService "github.com/avlasov/ABP-BookingPlatform/internal/service/bookings"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgBookingNotFound      = "бронирование не найдено"
	msgAccessDenied         = "бронирование принадлежит другому бизнесу"
	msgInvalidTransition    = "недопустимый переход статуса"
	msgInvalidTransitionFmt = "недопустимый переход статуса %s -> %s"
	msgInvalidStatus        = "некорректный статус"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), bookingID, &models.UpdateStatusRequest{
		BusinessID:         businessID,
		Status:             req.Status,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking=%d, business=%d",
				bookingID, businessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking=%d, status=%s",
				bookingID, req.Status)
			// Клиенту называются текущий и запрошенный статусы
			msg := msgInvalidTransition
			var trErr *bookingsService.TransitionError
			if errors.As(err, &trErr) {
				msg = fmt.Sprintf(msgInvalidTransitionFmt, trErr.From, trErr.To)
			}
			handlers.RespondConflict(w, msg)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed: booking=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Updated: booking=%d, status=%s", bookingID, req.Status)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
