package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	businessRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/business"
	serviceRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/service"
	"github.com/avlasov/ABP-BookingPlatform/pkg/types"
	"github.com/avlasov/ABP-BookingPlatform/pkg/tztime"
)

// Стабы зависимостей

type stubBusinessRepo struct {
	business *domain.Business
	err      error
}

func (s *stubBusinessRepo) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	return s.business, s.err
}

type stubServiceRepo struct {
	service *domain.Service
	err     error
}

func (s *stubServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return s.service, s.err
}

type stubWorkingHoursRepo struct {
	hours []*domain.WorkingHours
	err   error
}

func (s *stubWorkingHoursRepo) ListByBusinessAndDay(_ context.Context, _ int64, _ int) ([]*domain.WorkingHours, error) {
	return s.hours, s.err
}

type stubClosureRepo struct {
	closures []*domain.Closure
	err      error
}

func (s *stubClosureRepo) ListByBusinessAndDate(_ context.Context, _ int64, _ string) ([]*domain.Closure, error) {
	return s.closures, s.err
}

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) ListConfirmedBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

// statusFilteringBookingRepo повторяет контракт хранилища: наружу отдаются
// только CONFIRMED-строки, фильтр по статусу живёт в SQL-запросе
type statusFilteringBookingRepo struct {
	bookings []*domain.Booking
}

func (s *statusFilteringBookingRepo) ListConfirmedBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	confirmed := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if b.Status == domain.StatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	return confirmed, nil
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры

func hoursRange(start, end types.TimeString) *domain.WorkingHours {
	return &domain.WorkingHours{BusinessID: 1, StartTime: start, EndTime: end}
}

func utcBusiness() *domain.Business {
	return &domain.Business{ID: 1, Name: "Test Salon", Timezone: "UTC", IsActive: true}
}

func service30min() *domain.Service {
	return &domain.Service{ID: 10, BusinessID: 1, DurationMinutes: 30, IsActive: true}
}

func newTestUseCase(
	business *stubBusinessRepo,
	svc *stubServiceRepo,
	wh *stubWorkingHoursRepo,
	cl *stubClosureRepo,
	bk BookingRepository,
	now time.Time,
) *UseCase {
	uc := NewUseCase(business, svc, wh, cl, bk, "UTC", nopLogger{})
	uc.timeProvider = &fixedTime{t: now}
	return uc
}

// now за неделю до запрашиваемой даты, фильтр lead time не активен
var testNow = time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)

const testDate = "2026-09-10" // четверг

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.String())
	}
	return starts
}

func TestExecute_FullDayNoBookings(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "17:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// 8 часов по 30 минут без буфера
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "09:30", resp.Slots[0].EndTime.String())
	assert.Equal(t, "16:30", resp.Slots[15].StartTime.String())
	assert.Equal(t, "17:00", resp.Slots[15].EndTime.String())
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestExecute_RepeatedCallYieldsSameSlots(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "17:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	first, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_BufferSpacesSlots(t *testing.T) {
	svc := service30min()
	svc.BufferMinutes = 15

	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: svc},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "11:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// Шаг 45 минут, сам слот занимает 30
	assert.Equal(t, []string{"09:00", "09:45", "10:30"}, slotStarts(resp.Slots))
	assert.Equal(t, "11:00", resp.Slots[2].EndTime.String())
}

func TestExecute_ConfirmedBookingBlocksSlot(t *testing.T) {
	booked := &domain.Booking{
		BusinessID: 1,
		StartAt:    time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "12:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{bookings: []*domain.Booking{booked}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slotStarts(resp.Slots))
}

func TestExecute_PendingBookingDoesNotBlock(t *testing.T) {
	// 10:00 занят подтверждённым бронированием, на 11:00 есть только PENDING
	repo := &statusFilteringBookingRepo{bookings: []*domain.Booking{
		{
			BusinessID: 1, Status: domain.StatusConfirmed,
			StartAt: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			BusinessID: 1, Status: domain.StatusPending,
			StartAt: time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 9, 10, 11, 30, 0, 0, time.UTC),
		},
	}}

	uc := NewUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "12:00")}},
		&stubClosureRepo{},
		repo,
		"UTC", nopLogger{},
	)
	uc.timeProvider = &fixedTime{t: testNow}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "11:00")
}

func TestExecute_DSTTransitionDayLocalizesBookings(t *testing.T) {
	// 2026-03-29 в Europe/Skopje - перевод часов вперёд, местные сутки
	// короче на час: смещение от полуночи не равно местному времени
	business := utcBusiness()
	business.Timezone = "Europe/Skopje"

	startAt, err := tztime.ToUTC("2026-03-29", "10:00", "Europe/Skopje")
	require.NoError(t, err)

	uc := newTestUseCase(
		&stubBusinessRepo{business: business},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "11:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{bookings: []*domain.Booking{{
			BusinessID: 1, Status: domain.StatusConfirmed,
			StartAt: startAt, EndAt: startAt.Add(30 * time.Minute),
		}}},
		time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: "2026-03-29"})
	require.NoError(t, err)

	// Занят именно местный 10:00, а свободный 09:00 остаётся в выдаче
	assert.Equal(t, []string{"09:00", "09:30", "10:30"}, slotStarts(resp.Slots))
}

func TestExecute_SplitShift(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{
			hoursRange("09:00", "10:00"),
			hoursRange("15:00", "16:00"),
		}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "15:00", "15:30"}, slotStarts(resp.Slots))
}

func TestExecute_HolidayClosureEmptiesDay(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "17:00")}},
		&stubClosureRepo{closures: []*domain.Closure{
			{BusinessID: 1, Type: domain.ClosureHoliday, Date: testDate},
		}},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BreakClosureBlocksRange(t *testing.T) {
	breakStart := types.TimeString("12:00")
	breakEnd := types.TimeString("13:00")

	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("11:00", "14:00")}},
		&stubClosureRepo{closures: []*domain.Closure{
			{BusinessID: 1, Type: domain.ClosureBreak, Date: testDate, StartTime: &breakStart, EndTime: &breakEnd},
		}},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"11:00", "11:30", "13:00", "13:30"}, slotStarts(resp.Slots))
}

func TestExecute_NoWorkingHoursMeansDayOff(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateIsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "17:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MinLeadTimeAppliesOnlyToday(t *testing.T) {
	business := utcBusiness()
	business.Policies.MinLeadTimeMinutes = 60

	// Сейчас 10:05 местного, запрашиваем сегодняшний день
	now := time.Date(2026, 9, 10, 10, 5, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubBusinessRepo{business: business},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "13:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// Первый слот не раньше 11:05 (now + lead time)
	assert.Equal(t, []string{"11:30", "12:00", "12:30"}, slotStarts(resp.Slots))

	// На завтрашнюю дату lead time не действует
	resp, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: "2026-09-17"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
}

func TestExecute_BusinessTimezoneLocalizesBookings(t *testing.T) {
	business := utcBusiness()
	business.Timezone = "Asia/Tokyo" // UTC+9

	// 10:00-10:30 местного = 01:00-01:30 UTC
	booked := &domain.Booking{
		BusinessID: 1,
		StartAt:    time.Date(2026, 9, 10, 1, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, 9, 10, 1, 30, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&stubBusinessRepo{business: business},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{hours: []*domain.WorkingHours{hoursRange("09:00", "11:00")}},
		&stubClosureRepo{},
		&stubBookingRepo{bookings: []*domain.Booking{booked}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30"}, slotStarts(resp.Slots))
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{err: businessRepo.ErrBusinessNotFound},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 99, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceOfAnotherBusiness(t *testing.T) {
	foreign := service30min()
	foreign.BusinessID = 2

	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: foreign},
		&stubWorkingHoursRepo{},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{err: serviceRepo.ErrServiceNotFound},
		&stubWorkingHoursRepo{},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: "10.09.2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc := newTestUseCase(
		&stubBusinessRepo{business: utcBusiness()},
		&stubServiceRepo{service: service30min()},
		&stubWorkingHoursRepo{err: errors.New("connection refused")},
		&stubClosureRepo{},
		&stubBookingRepo{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
