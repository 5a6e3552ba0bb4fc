package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/internal/api/handlers"
	getAvailableSlots "github.com/avlasov/ABP-BookingPlatform/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный параметр serviceId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots?serviceId=&date=
//
// Доступность отказоустойчива в сторону пустоты: любая ошибка вычисления
// (неизвестный бизнес, кривая таймзона, отказ БД) отдается как пустой
// список слотов, а не как 5xx - клиент никогда не видит фантомные слоты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /available-slots - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		h.logger.Warn("GET /available-slots - degraded to empty: business=%d, service=%d, date=%s: %v",
			businessID, serviceID, date, err)
		handlers.RespondJSON(w, http.StatusOK, EmptyResponse(businessID, serviceID, date))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
