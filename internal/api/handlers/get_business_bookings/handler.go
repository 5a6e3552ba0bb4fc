package get_business_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	bookingsService "github.com/avlasov/ABP-BookingPlatform/internal/service/bookings"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
)

const (
	msgInvalidFrom   = "некорректный параметр from, ожидается RFC3339"
	msgInvalidTo     = "некорректный параметр to, ожидается RFC3339"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/bookings?from=&to=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	req := &models.GetBusinessBookingsRequest{
		BusinessID:      businessID,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.To = &to
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetBusinessBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings - Failed: business=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
