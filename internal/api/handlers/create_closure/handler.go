package create_closure

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
	msgInvalidClosure     = "некорректные данные закрытия"
)

// CreateClosureRequest HTTP request model
type CreateClosureRequest struct {
	Type      string  `json:"type"` // "HOLIDAY" | "BREAK"
	Date      string  `json:"date"` // "YYYY-MM-DD"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Note      *string `json:"note,omitempty"`
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

// Handle POST /api/v1/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	var req CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateClosure(r.Context(), &models.CreateClosureRequest{
		BusinessID: businessID,
		Type:       req.Type,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Note:       req.Note,
	})
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			h.logger.Warn("POST /closures - Invalid closure: business=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidClosure)
			return
		}
		h.logger.Error("POST /closures - Failed: business=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /closures - Created: business=%d, closure=%d", businessID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
