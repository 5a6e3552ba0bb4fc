package bookings

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
	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
	"github.com/avlasov/ABP-BookingPlatform/pkg/managetoken"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// reminderWindow за сколько до визита отправляется напоминание
const reminderWindow = 24 * time.Hour

// Service сервис жизненного цикла бронирований: смена статусов владельцем,
// самообслуживание клиента по manage-токену и напоминания
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	mailer       Mailer
	timeProvider TimeProvider
	defaultTZ    string
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	businessRepository BusinessRepository,
	serviceRepository ServiceRepository,
	mailClient Mailer,
	defaultTZ string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepository,
		businessRepo: businessRepository,
		serviceRepo:  serviceRepository,
		mailer:       mailClient,
		timeProvider: &RealTimeProvider{},
		defaultTZ:    defaultTZ,
		logger:       logger,
	}
}

// UpdateStatus обновляет статус бронирования владельцем бизнеса.
// Допустимые переходы: PENDING -> CONFIRMED | CANCELLED_BY_BUSINESS,
// CONFIRMED -> COMPLETED | NO_SHOW | CANCELLED_BY_BUSINESS.
// Конечные статусы переходов не имеют
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by business=%d",
		bookingID, req.Status, req.BusinessID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Бизнес управляет только своими бронированиями
	if booking.BusinessID != req.BusinessID {
		s.logger.Warn("UpdateStatus: booking id=%d belongs to business=%d, not %d",
			bookingID, booking.BusinessID, req.BusinessID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return &TransitionError{From: booking.Status, To: newStatus}
	}

	if newStatus == domain.StatusCancelledByBusiness {
		err = s.bookingRepo.Cancel(ctx, bookingID, newStatus, req.CancellationReason)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)

	// Клиент узнаёт о подтверждении и отмене письмом
	switch newStatus {
	case domain.StatusConfirmed:
		s.notify(booking, func(data mailer.BookingEmailData) (string, string) {
			return mailer.ConfirmedEmail(data)
		})
	case domain.StatusCancelledByBusiness:
		reason := ""
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		s.notify(booking, func(data mailer.BookingEmailData) (string, string) {
			return mailer.CancelledEmail(data, reason)
		})
	}

	return nil
}

// GetByToken возвращает бронирование клиенту по сырому manage-токену
func (s *Service) GetByToken(ctx context.Context, rawToken string) (*models.ManageBookingResponse, error) {
	booking, business, service, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	date, startTime, err := s.localize(booking.StartAt, business)
	if err != nil {
		s.logger.Error("GetByToken: failed to localize booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: GetByToken - localize: %v", ErrInternal, err)
	}

	canCancel := booking.CanBeCancelledByClient() &&
		s.withinCancelWindow(booking, business) == nil

	return &models.ManageBookingResponse{
		BusinessName: business.Name,
		ServiceName:  service.Name,
		Date:         date,
		StartTime:    startTime,
		Status:       string(booking.Status),
		CanCancel:    canCancel,
	}, nil
}

// CancelByToken отменяет бронирование по инициативе клиента.
// Отмена отклоняется для конечных статусов и когда до визита осталось
// меньше окна отмены, установленного бизнесом
func (s *Service) CancelByToken(ctx context.Context, rawToken string, req *models.CancelByTokenRequest) error {
	booking, business, _, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return err
	}

	s.logger.Info("CancelByToken: cancelling booking id=%d", booking.ID)

	if !booking.CanBeCancelledByClient() {
		s.logger.Warn("CancelByToken: booking id=%d in terminal status=%s", booking.ID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.withinCancelWindow(booking, business); err != nil {
		s.logger.Warn("CancelByToken: booking id=%d inside cancel window of %dh",
			booking.ID, business.Policies.CancelWindowHours)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, domain.StatusCancelledByClient, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelByToken: booking id=%d cancelled by client", booking.ID)

	s.notify(booking, func(data mailer.BookingEmailData) (string, string) {
		return mailer.CancellationConfirmedEmail(data)
	})

	return nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией
// по периоду, статусу и включению неактивных
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBusinessBookings: business=%d", req.BusinessID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByBusiness(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// RunReminders отправляет напоминания по подтверждённым бронированиям,
// начинающимся в ближайшие 24 часа. Запускается внешним планировщиком
// через внутренний эндпоинт. Повторный прогон безопасен - уже
// отправленные напоминания помечены в БД
func (s *Service) RunReminders(ctx context.Context) (*models.RemindersResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("RunReminders: sweep at %s", now.Format(time.RFC3339))

	due, err := s.bookingRepo.ListDueReminders(ctx, now, now.Add(reminderWindow))
	if err != nil {
		s.logger.Error("RunReminders: repository error: %v", err)
		return nil, fmt.Errorf("%w: RunReminders - repository error: %v", ErrInternal, err)
	}

	sent := 0
	for _, booking := range due {
		if booking.Customer.Email == nil {
			// Напоминать некуда, но помечаем - иначе строка вечно в выборке
			s.markReminderHandled(ctx, booking.ID)
			continue
		}

		business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
		if err != nil {
			// Деактивированный бизнес - напомнить не о чем, помечаем,
			// иначе строка возвращается в выборку на каждом прогоне
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				s.markReminderHandled(ctx, booking.ID)
			} else {
				s.logger.Error("RunReminders: failed to get business id=%d: %v", booking.BusinessID, err)
			}
			continue
		}
		if !business.EmailNotifications {
			s.markReminderHandled(ctx, booking.ID)
			continue
		}

		service, err := s.serviceRepo.GetByID(ctx, booking.ServiceID)
		if err != nil {
			// Деактивированная услуга помечается так же
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				s.markReminderHandled(ctx, booking.ID)
			} else {
				s.logger.Error("RunReminders: failed to get service id=%d: %v", booking.ServiceID, err)
			}
			continue
		}

		date, startTime, err := s.localize(booking.StartAt, business)
		if err != nil {
			s.logger.Error("RunReminders: failed to localize booking id=%d: %v", booking.ID, err)
			continue
		}

		subject, body := mailer.ReminderEmail(mailer.BookingEmailData{
			CustomerName: booking.Customer.FullName,
			BusinessName: business.Name,
			ServiceName:  service.Name,
			Date:         date,
			StartTime:    startTime,
		})

		if err := s.mailer.Send(*booking.Customer.Email, subject, body); err != nil {
			s.logger.Error("RunReminders: failed to send reminder for booking id=%d: %v", booking.ID, err)
			continue
		}

		if err := s.bookingRepo.MarkReminderSent(ctx, booking.ID); err != nil {
			s.logger.Error("RunReminders: failed to mark booking id=%d: %v", booking.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("RunReminders: sent %d of %d due reminders", sent, len(due))
	return &models.RemindersResponse{Sent: sent}, nil
}

// Вспомогательные методы

// resolveToken находит бронирование по сырому токену вместе с бизнесом и услугой.
// Неизвестный токен неотличим от отсутствующего бронирования
func (s *Service) resolveToken(ctx context.Context, rawToken string) (*domain.Booking, *domain.Business, *domain.Service, error) {
	if rawToken == "" {
		return nil, nil, nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByManageTokenHash(ctx, managetoken.Hash(rawToken))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("resolveToken: unknown manage token")
			return nil, nil, nil, ErrBookingNotFound
		}
		s.logger.Error("resolveToken: repository error: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: resolveToken - repository error: %v", ErrInternal, err)
	}

	business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
	if err != nil {
		s.logger.Error("resolveToken: failed to get business id=%d: %v", booking.BusinessID, err)
		return nil, nil, nil, fmt.Errorf("%w: resolveToken - failed to get business: %v", ErrInternal, err)
	}

	service, err := s.serviceRepo.GetByID(ctx, booking.ServiceID)
	if err != nil {
		s.logger.Error("resolveToken: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, nil, nil, fmt.Errorf("%w: resolveToken - failed to get service: %v", ErrInternal, err)
	}

	return booking, business, service, nil
}

// markReminderHandled помечает строку, по которой напоминание отправить
// невозможно, чтобы она не возвращалась в выборку на каждом прогоне
func (s *Service) markReminderHandled(ctx context.Context, bookingID int64) {
	if err := s.bookingRepo.MarkReminderSent(ctx, bookingID); err != nil {
		s.logger.Error("RunReminders: failed to mark booking id=%d: %v", bookingID, err)
	}
}

// withinCancelWindow проверяет политику окна отмены бизнеса
func (s *Service) withinCancelWindow(booking *domain.Booking, business *domain.Business) error {
	window := business.Policies.CancelWindowHours
	if window <= 0 {
		return nil
	}
	if booking.HoursUntilStart(s.timeProvider.Now()) < float64(window) {
		return &CancelWindowError{WindowHours: window}
	}
	return nil
}

// localize переводит UTC-момент в местную дату и время бизнеса
func (s *Service) localize(t time.Time, business *domain.Business) (date, startTime string, err error) {
	tz := business.Timezone
	if tz == "" {
		tz = s.defaultTZ
	}

	date, minutes, err := tztime.FromUTC(t, tz)
	if err != nil {
		return "", "", err
	}
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return "", "", err
	}
	return date, ts.String(), nil
}

// notify отправляет письмо клиенту в отдельной горутине (fire-and-forget)
func (s *Service) notify(booking *domain.Booking, build func(mailer.BookingEmailData) (string, string)) {
	if booking.Customer.Email == nil {
		return
	}

	business, err := s.businessRepo.GetByID(context.Background(), booking.BusinessID)
	if err != nil {
		s.logger.Error("notify: failed to get business id=%d: %v", booking.BusinessID, err)
		return
	}
	if !business.EmailNotifications {
		return
	}

	service, err := s.serviceRepo.GetByID(context.Background(), booking.ServiceID)
	if err != nil {
		s.logger.Error("notify: failed to get service id=%d: %v", booking.ServiceID, err)
		return
	}

	date, startTime, err := s.localize(booking.StartAt, business)
	if err != nil {
		s.logger.Error("notify: failed to localize booking id=%d: %v", booking.ID, err)
		return
	}

	subject, body := build(mailer.BookingEmailData{
		CustomerName: booking.Customer.FullName,
		BusinessName: business.Name,
		ServiceName:  service.Name,
		Date:         date,
		StartTime:    startTime,
	})

	to := *booking.Customer.Email
	bookingID := booking.ID
	go func() {
		if err := s.mailer.Send(to, subject, body); err != nil {
			s.logger.Error("notify: failed to send email for booking id=%d: %v", bookingID, err)
		}
	}()
}
