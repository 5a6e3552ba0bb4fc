package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	businessRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/business"
	serviceRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/service"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	businessRepo     BusinessRepository
	serviceRepo      ServiceRepository
	workingHoursRepo WorkingHoursRepository
	closureRepo      ClosureRepository
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	defaultTZ        string
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepository BusinessRepository,
	serviceRepository ServiceRepository,
	workingHoursRepository WorkingHoursRepository,
	closureRepository ClosureRepository,
	bookingRepository BookingRepository,
	defaultTZ string,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:     businessRepository,
		serviceRepo:      serviceRepository,
		workingHoursRepo: workingHoursRepository,
		closureRepo:      closureRepository,
		bookingRepo:      bookingRepository,
		timeProvider:     &RealTimeProvider{},
		defaultTZ:        defaultTZ,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
//
// Вызывается как публичным эндпоинтом доступности, так и usecase создания
// бронирования (внутри сериализуемой транзакции - для повторной проверки
// выбранного слота перед вставкой)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Получаем услугу и проверяем принадлежность бизнесу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID {
		uc.logger.Warn("GetAvailableSlots: service id=%d does not belong to business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 5. Вычисляем доступные слоты
	slots, err := uc.computeSlots(ctx, business, service, req.Date, now)
	if err != nil {
		return nil, err
	}

	tz := business.Timezone
	if tz == "" {
		tz = uc.defaultTZ
	}

	uc.logger.Info("GetAvailableSlots: %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date)

	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Timezone:   tz,
		Slots:      slots,
	}, nil
}
