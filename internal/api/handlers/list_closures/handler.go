package list_closures

import (
	"errors"
	"net/http"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	scheduleService "github.com/avlasov/ABP-BookingPlatform/internal/service/schedule"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
)

const (
	msgInvalidFromDate = "некорректный параметр fromDate, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/closures?fromDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	result, err := h.service.ListClosures(r.Context(), &models.ListClosuresRequest{
		BusinessID: businessID,
		FromDate:   r.URL.Query().Get("fromDate"),
	})
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		h.logger.Error("GET /closures - Failed: business=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
