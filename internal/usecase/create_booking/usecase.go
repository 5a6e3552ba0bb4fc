package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	bookingRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/booking"
	businessRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/business"
	serviceRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/service"
	"github.com/avlasov/ABP-BookingPlatform/internal/integrations/mailer"
	slotsUC "github.com/avlasov/ABP-BookingPlatform/internal/usecase/get_available_slots"
	"github.com/avlasov/ABP-BookingPlatform/pkg/managetoken"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// UseCase use case для создания бронирования
type UseCase struct {
	businessRepo  BusinessRepository
	serviceRepo   ServiceRepository
	bookingRepo   BookingRepository
	slotsProvider SlotsProvider
	txManager     TransactionManager
	mailer        Mailer
	timeProvider  TimeProvider
	defaultTZ     string
	manageBaseURL string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepository BusinessRepository,
	serviceRepository ServiceRepository,
	bookingRepository BookingRepository,
	slotsProvider SlotsProvider,
	txManager TransactionManager,
	mailClient Mailer,
	defaultTZ string,
	manageBaseURL string,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:  businessRepository,
		serviceRepo:   serviceRepository,
		bookingRepo:   bookingRepository,
		slotsProvider: slotsProvider,
		txManager:     txManager,
		mailer:        mailClient,
		timeProvider:  &RealTimeProvider{},
		defaultTZ:     defaultTZ,
		manageBaseURL: manageBaseURL,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Использует сериализуемую транзакцию: доступность пересчитывается внутри
// транзакции, а exclusion constraint в БД отклоняет конкурентную вставку
// пересекающегося интервала. Из двух одновременных запросов на один слот
// ровно один получает бронирование, второй - ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, service=%d, date=%s, time=%s, manual=%t",
		req.BusinessID, req.ServiceID, req.Date, req.StartTime, req.Manual)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Получаем услугу и проверяем принадлежность бизнесу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID {
		uc.logger.Warn("CreateBooking: service id=%d does not belong to business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 4. Переводим местное время слота в UTC-интервал.
	// EndAt = StartAt + duration: буфер влияет только на шаг слотов,
	// сам интервал бронирования его не включает
	tz := business.Timezone
	if tz == "" {
		tz = uc.defaultTZ
	}

	startAt, err := tztime.ToUTC(req.Date, req.StartTime.String(), tz)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid slot time: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 5. Определяем начальный статус
	status := domain.StatusPending
	if req.Manual || business.Policies.AutoConfirm {
		status = domain.StatusConfirmed
	}

	// 6. Генерируем manage-токен для публичных бронирований.
	// Сырой токен возвращается клиенту единственный раз, хранится только хэш
	var rawToken string
	var tokenHash *string
	if !req.Manual {
		raw, hash, err := managetoken.Generate()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate manage token: %v", err)
			return nil, fmt.Errorf("%w: failed to generate manage token: %v", ErrInternal, err)
		}
		rawToken = raw
		tokenHash = &hash
	}

	var result *domain.Booking

	// 7. Сериализуемая транзакция: пересчёт доступности + вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Manual-бронирования создаются бизнесом напрямую и могут
		// выходить за рамки публичного расписания; пересечение интервалов
		// при этом всё равно отклоняет exclusion constraint
		if !req.Manual {
			slotsResp, err := uc.slotsProvider.Execute(txCtx, &slotsUC.Request{
				BusinessID: req.BusinessID,
				ServiceID:  req.ServiceID,
				Date:       req.Date,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to recompute slots: %v", err)
				return fmt.Errorf("%w: failed to recompute slots: %v", ErrInternal, err)
			}

			if !slotOffered(slotsResp.Slots, req.StartTime) {
				uc.logger.Warn("CreateBooking: slot %s %s not available for business=%d",
					req.Date, req.StartTime, req.BusinessID)
				return ErrSlotNotAvailable
			}
		}

		// 7.2. Сохраняем бронирование
		booking := &domain.Booking{
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			StartAt:    startAt,
			EndAt:      endAt,
			Status:     status,
			Customer: domain.Customer{
				FullName: req.CustomerName,
				Phone:    req.CustomerPhone,
				Email:    req.CustomerEmail,
			},
			Note:            req.Note,
			ManageTokenHash: tokenHash,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s lost to concurrent booking", req.Date, req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сериализуемая транзакция может упасть конфликтом и на COMMIT -
		// это тоже проигранная гонка за слот, а не внутренняя ошибка
		if bookingRepo.IsSlotConflict(err) {
			uc.logger.Warn("CreateBooking: slot %s %s lost at commit", req.Date, req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	// 8. Уведомление клиента - вне транзакции, в отдельной горутине.
	// Ошибки доставки логируются и никогда не проваливают бронирование
	uc.notifyCustomer(business, service, result, rawToken)

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		// Конец слота за пределами суток - отдаём только UTC-временные метки
		endTime = ""
	}

	return &Response{
		ID:          result.ID,
		BusinessID:  result.BusinessID,
		ServiceID:   result.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		StartAt:     result.StartAt,
		EndAt:       result.EndAt,
		Status:      string(result.Status),
		ManageToken: rawToken,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// slotOffered проверяет, что запрошенное время входит в список доступных слотов
func slotOffered(slots []domain.Slot, startTime types.TimeString) bool {
	for _, s := range slots {
		if s.StartTime == startTime {
			return true
		}
	}
	return false
}

// notifyCustomer отправляет письмо о создании бронирования (fire-and-forget)
func (uc *UseCase) notifyCustomer(business *domain.Business, service *domain.Service, booking *domain.Booking, rawToken string) {
	if !business.EmailNotifications || booking.Customer.Email == nil {
		return
	}

	tz := business.Timezone
	if tz == "" {
		tz = uc.defaultTZ
	}

	date, minutes, err := tztime.FromUTC(booking.StartAt, tz)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to localize booking time for email: %v", err)
		return
	}
	startTime, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to format booking time for email: %v", err)
		return
	}

	manageURL := ""
	if rawToken != "" {
		manageURL = fmt.Sprintf("%s/manage/%s", uc.manageBaseURL, rawToken)
	}

	data := mailer.BookingEmailData{
		CustomerName: booking.Customer.FullName,
		BusinessName: business.Name,
		ServiceName:  service.Name,
		Date:         date,
		StartTime:    startTime.String(),
		ManageURL:    manageURL,
	}

	var subject, body string
	if booking.Status == domain.StatusConfirmed {
		subject, body = mailer.ConfirmedEmail(data)
	} else {
		subject, body = mailer.PendingEmail(data)
	}

	to := *booking.Customer.Email
	go func() {
		if err := uc.mailer.Send(to, subject, body); err != nil {
			uc.logger.Error("CreateBooking: failed to send email for booking id=%d: %v", booking.ID, err)
		}
	}()
}
