package get_working_hours

import (
	"net/http"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /working-hours - Failed: business=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
