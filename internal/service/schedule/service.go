package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	closureRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/closure"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/schedule/models"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// Service сервис управления расписанием бизнеса: недельные рабочие часы
// и закрытия (праздники, перерывы)
type Service struct {
	workingHoursRepo WorkingHoursRepository
	closureRepo      ClosureRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	workingHoursRepository WorkingHoursRepository,
	closureRepository ClosureRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepository,
		closureRepo:      closureRepository,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWorkingHours возвращает недельное расписание бизнеса
func (s *Service) GetWorkingHours(ctx context.Context, businessID int64) (*models.WorkingHoursResponse, error) {
	hours, err := s.workingHoursRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkingHours(hours), nil
}

// ReplaceWorkingHours атомарно заменяет недельное расписание бизнеса.
// Запросы на дни без записей означают выходной. Интервалы одного дня
// не должны пересекаться - иначе слоты задублируются
func (s *Service) ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("ReplaceWorkingHours: business=%d, %d entries", req.BusinessID, len(req.Hours))

	hours, err := validateWorkingHours(req)
	if err != nil {
		s.logger.Warn("ReplaceWorkingHours: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.workingHoursRepo.ReplaceForBusiness(txCtx, req.BusinessID, hours)
	})
	if err != nil {
		s.logger.Error("ReplaceWorkingHours: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWorkingHours: business=%d schedule replaced", req.BusinessID)
	return models.FromDomainWorkingHours(hours), nil
}

// CreateClosure создает закрытие: праздник (весь день, без времени)
// или перерыв (интервал внутри дня)
func (s *Service) CreateClosure(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	s.logger.Info("CreateClosure: business=%d, type=%s, date=%s", req.BusinessID, req.Type, req.Date)

	closure, err := validateClosure(req)
	if err != nil {
		s.logger.Warn("CreateClosure: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	created, err := s.closureRepo.Create(ctx, closure)
	if err != nil {
		s.logger.Error("CreateClosure: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: CreateClosure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClosure: created closure id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainClosure(created), nil
}

// ListClosures возвращает закрытия бизнеса начиная с указанной даты
func (s *Service) ListClosures(ctx context.Context, req *models.ListClosuresRequest) (*models.ClosureListResponse, error) {
	if req.FromDate != "" {
		if err := tztime.ValidDate(req.FromDate); err != nil {
			return nil, fmt.Errorf("%w: fromDate must be in YYYY-MM-DD format", ErrInvalidInput)
		}
	}

	closures, err := s.closureRepo.ListByBusiness(ctx, req.BusinessID, req.FromDate)
	if err != nil {
		s.logger.Error("ListClosures: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListClosures - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClosureList(closures), nil
}

// DeleteClosure удаляет закрытие бизнеса
func (s *Service) DeleteClosure(ctx context.Context, businessID, closureID int64) error {
	s.logger.Info("DeleteClosure: business=%d, closure=%d", businessID, closureID)

	if err := s.closureRepo.Delete(ctx, businessID, closureID); err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			s.logger.Warn("DeleteClosure: closure id=%d not found for business=%d", closureID, businessID)
			return ErrClosureNotFound
		}
		s.logger.Error("DeleteClosure: repository error for closure id=%d: %v", closureID, err)
		return fmt.Errorf("%w: DeleteClosure - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Валидация

func validateWorkingHours(req *models.ReplaceWorkingHoursRequest) ([]*domain.WorkingHours, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	hours := make([]*domain.WorkingHours, 0, len(req.Hours))
	for i, entry := range req.Hours {
		if entry.DayOfWeek < domain.MinDayOfWeek || entry.DayOfWeek > domain.MaxDayOfWeek {
			return nil, fmt.Errorf("%w: entry %d: dayOfWeek must be 0..6", ErrInvalidInput, i)
		}

		start, err := types.NewTimeStringFromString(entry.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: startTime: %v", ErrInvalidInput, i, err)
		}
		end, err := types.NewTimeStringFromString(entry.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: endTime: %v", ErrInvalidInput, i, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: entry %d: startTime must be before endTime", ErrInvalidInput, i)
		}

		hours = append(hours, &domain.WorkingHours{
			BusinessID: req.BusinessID,
			DayOfWeek:  entry.DayOfWeek,
			StartTime:  start,
			EndTime:    end,
		})
	}

	return hours, nil
}

func validateClosure(req *models.CreateClosureRequest) (*domain.Closure, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if err := tztime.ValidDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	closure := &domain.Closure{
		BusinessID: req.BusinessID,
		Date:       req.Date,
		Note:       req.Note,
	}

	switch domain.ClosureType(req.Type) {
	case domain.ClosureHoliday:
		if req.StartTime != nil || req.EndTime != nil {
			return nil, fmt.Errorf("%w: holiday closure must not have startTime/endTime", ErrInvalidInput)
		}
		closure.Type = domain.ClosureHoliday

	case domain.ClosureBreak:
		if req.StartTime == nil || req.EndTime == nil {
			return nil, fmt.Errorf("%w: break closure requires startTime and endTime", ErrInvalidInput)
		}
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
		closure.Type = domain.ClosureBreak
		closure.StartTime = &start
		closure.EndTime = &end

	default:
		return nil, fmt.Errorf("%w: type must be HOLIDAY or BREAK", ErrInvalidInput)
	}

	return closure, nil
}
