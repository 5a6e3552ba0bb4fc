package delete_closure

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	scheduleService "github.com/avlasov/ABP-BookingPlatform/internal/service/schedule"
)

const (
	msgInvalidClosureID = "некорректный ID закрытия"
	msgClosureNotFound  = "закрытие не найдено"
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

// Handle DELETE /api/v1/closures/{closureId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing business identity")
		return
	}

	closureID, err := strconv.ParseInt(mux.Vars(r)["closureId"], 10, 64)
	if err != nil || closureID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidClosureID)
		return
	}

	if err := h.service.DeleteClosure(r.Context(), businessID, closureID); err != nil {
		if errors.Is(err, scheduleService.ErrClosureNotFound) {
			handlers.RespondNotFound(w, msgClosureNotFound)
			return
		}
		h.logger.Error("DELETE /closures/{id} - Failed: business=%d, closure=%d, error=%v",
			businessID, closureID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /closures/{id} - Deleted: business=%d, closure=%d", businessID, closureID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
