package cancel_by_token

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	bookingsService "github.com/avlasov/ABP-BookingPlatform/internal/service/bookings"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование уже завершено или отменено"
	msgCancelWindow       = "срок бесплатной отмены истёк, свяжитесь с бизнесом напрямую"
	msgCancelWindowFmt    = "отмена возможна не позднее чем за %d ч до визита, свяжитесь с бизнесом напрямую"
)

// CancelRequest HTTP request model (тело опционально)
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
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

// Handle POST /api/v1/manage/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawToken := mux.Vars(r)["token"]

	// Тело запроса опционально - отмена возможна и без причины
	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /manage/{token}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.CancelByToken(r.Context(), rawToken, &models.CancelByTokenRequest{
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrCancelWindowPassed):
			// Клиенту называется порог окна отмены, установленный бизнесом
			msg := msgCancelWindow
			var cwErr *bookingsService.CancelWindowError
			if errors.As(err, &cwErr) {
				msg = fmt.Sprintf(msgCancelWindowFmt, cwErr.WindowHours)
			}
			handlers.RespondConflict(w, msg)

		default:
			h.logger.Error("POST /manage/{token}/cancel - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
