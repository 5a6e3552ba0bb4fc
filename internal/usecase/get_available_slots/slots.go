package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/timerange"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// computeSlots вычисляет доступные слоты на дату по местному времени бизнеса:
// рабочие часы минус закрытия минус подтверждённые бронирования, затем
// нарезка свободных интервалов с шагом duration+buffer.
//
// PENDING-бронирования отображаемую доступность не блокируют - защита от
// двойного бронирования обеспечивается на этапе вставки
func (uc *UseCase) computeSlots(
	ctx context.Context,
	business *domain.Business,
	service *domain.Service,
	date string,
	now time.Time,
) ([]domain.Slot, error) {
	tz := business.Timezone
	if tz == "" {
		tz = uc.defaultTZ
	}

	// Прошедшие даты всегда пустые
	today, nowMinutes, err := tztime.FromUTC(now, tz)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve business timezone: %v", ErrInternal, err)
	}
	if date < today {
		return []domain.Slot{}, nil
	}

	// 1. Рабочие интервалы на день недели
	dayOfWeek, err := tztime.DayOfWeek(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hours, err := uc.workingHoursRepo.ListByBusinessAndDay(ctx, business.ID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: list working hours: %v", ErrInternal, err)
	}
	if len(hours) == 0 {
		return []domain.Slot{}, nil
	}

	open := make([]timerange.Range, 0, len(hours))
	for _, wh := range hours {
		start, err := wh.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: working hours start: %v", ErrInternal, err)
		}
		end, err := wh.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: working hours end: %v", ErrInternal, err)
		}
		open = append(open, timerange.Range{Start: start, End: end})
	}

	// 2. Закрытия: праздник обнуляет день, перерывы блокируют интервалы
	closures, err := uc.closureRepo.ListByBusinessAndDate(ctx, business.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: list closures: %v", ErrInternal, err)
	}

	blocked := make([]timerange.Range, 0, len(closures))
	for _, c := range closures {
		if c.Type == domain.ClosureHoliday {
			return []domain.Slot{}, nil
		}
		if c.StartTime == nil || c.EndTime == nil {
			continue
		}
		start, err := c.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: closure start: %v", ErrInternal, err)
		}
		end, err := c.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: closure end: %v", ErrInternal, err)
		}
		blocked = append(blocked, timerange.Range{Start: start, End: end})
	}

	// 3. Подтверждённые бронирования, пересекающие местные сутки
	dayStart, err := tztime.ToUTC(date, "00:00", tz)
	if err != nil {
		return nil, fmt.Errorf("%w: day start: %v", ErrInternal, err)
	}
	nextDate, err := nextCalendarDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dayEnd, err := tztime.ToUTC(nextDate, "00:00", tz)
	if err != nil {
		return nil, fmt.Errorf("%w: day end: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListConfirmedBetween(ctx, business.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
	}

	// Минуты считаются по местным стенным часам, а не как смещение от
	// полуночи: в дни перевода часов прошедшее время не равно местному
	for _, b := range bookings {
		startDate, start, err := tztime.FromUTC(b.StartAt, tz)
		if err != nil {
			return nil, fmt.Errorf("%w: localize booking start: %v", ErrInternal, err)
		}
		endDate, end, err := tztime.FromUTC(b.EndAt, tz)
		if err != nil {
			return nil, fmt.Errorf("%w: localize booking end: %v", ErrInternal, err)
		}

		// Обрезаем бронирования, пересекающие границы местных суток
		switch {
		case startDate > date:
			continue
		case startDate < date:
			start = 0
		}
		switch {
		case endDate < date:
			continue
		case endDate > date:
			end = timerange.MinutesPerDay
		}
		if start >= end {
			continue
		}
		blocked = append(blocked, timerange.Range{Start: start, End: end})
	}

	free := timerange.Subtract(open, blocked)

	// 4. Нарезка свободных интервалов: слот занимает duration минут,
	// следующий кандидат начинается через duration+buffer
	duration := service.DurationMinutes
	stride := service.SlotStrideMinutes()

	// minLeadTime действует только на сегодняшнюю дату
	minStart := 0
	if date == today {
		minStart = nowMinutes + business.Policies.MinLeadTimeMinutes
	}

	slots := make([]domain.Slot, 0)
	for _, r := range free {
		for cursor := r.Start; cursor+duration <= r.End; cursor += stride {
			if cursor < minStart {
				continue
			}
			startTime, err := types.NewTimeStringFromMinutes(cursor)
			if err != nil {
				return nil, fmt.Errorf("%w: slot start: %v", ErrInternal, err)
			}
			endTime, err := types.NewTimeStringFromMinutes(cursor + duration)
			if err != nil {
				return nil, fmt.Errorf("%w: slot end: %v", ErrInternal, err)
			}
			slots = append(slots, domain.Slot{StartTime: startTime, EndTime: endTime})
		}
	}

	return slots, nil
}

// nextCalendarDate возвращает следующую календарную дату в формате "YYYY-MM-DD"
func nextCalendarDate(date string) (string, error) {
	day, err := time.Parse(tztime.DateFormat, date)
	if err != nil {
		return "", err
	}
	return day.AddDate(0, 0, 1).Format(tztime.DateFormat), nil
}
