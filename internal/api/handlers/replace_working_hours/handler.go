package replace_working_hours

import (
	"errors"
	"net/http"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	scheduleService "github.com/avlasov/ABP-BookingPlatform/internal/service/schedule"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректное расписание"
)

// ReplaceWorkingHoursRequest HTTP request model
type ReplaceWorkingHoursRequest struct {
	Hours []models.WorkingHoursEntry `json:"hours"`
}

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

// Handle PUT /api/v1/working-hours
//
// Полная замена недельного расписания: присланный набор становится
// единственным источником, дни без записей - выходные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	var req ReplaceWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWorkingHours(r.Context(), &models.ReplaceWorkingHoursRequest{
		BusinessID: businessID,
		Hours:      req.Hours,
	})
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			h.logger.Warn("PUT /working-hours - Invalid hours: business=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)
			return
		}
		h.logger.Error("PUT /working-hours - Failed: business=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /working-hours - Replaced: business=%d, %d entries", businessID, len(req.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
