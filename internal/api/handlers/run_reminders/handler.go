package run_reminders

import (
	"net/http"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
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

// Handle POST /internal/reminders/run
// Дёргается внешним планировщиком, не входит в публичный API
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunReminders(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders/run - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
