package get_booking_by_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	bookingsService "github.com/avlasov/ABP-BookingPlatform/internal/service/bookings"
)

const (
	msgBookingNotFound = "бронирование не найдено"
)

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

// Handle GET /api/v1/manage/{token}
//
// Просмотр бронирования клиентом по manage-токену. Неизвестный токен
// отдает 404 - перебор токенов не раскрывает существование бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawToken := mux.Vars(r)["token"]

	result, err := h.service.GetByToken(r.Context(), rawToken)
	if err != nil {
		if errors.Is(err, bookingsService.ErrBookingNotFound) {
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /manage/{token} - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
