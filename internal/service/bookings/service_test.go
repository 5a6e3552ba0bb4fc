package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	bookingRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/booking"
	serviceRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/service"
	"github.com/avlasov/ABP-BookingPlatform/internal/service/bookings/models"
	"github.com/avlasov/ABP-BookingPlatform/pkg/managetoken"
	"github.com/avlasov/ABP-BookingPlatform/pkg/ptr"
)

// Стабы зависимостей

type stubBookingRepo struct {
	byID        map[int64]*domain.Booking
	byTokenHash map[string]*domain.Booking
	listed      []*domain.Booking
	due         []*domain.Booking

	updatedStatus map[int64]domain.BookingStatus
	cancelled     map[int64]domain.BookingStatus
	cancelReasons map[int64]*string
	reminded      map[int64]bool
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{
		byID:          map[int64]*domain.Booking{},
		byTokenHash:   map[string]*domain.Booking{},
		updatedStatus: map[int64]domain.BookingStatus{},
		cancelled:     map[int64]domain.BookingStatus{},
		cancelReasons: map[int64]*string{},
		reminded:      map[int64]bool{},
	}
}

func (s *stubBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := s.byID[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *stubBookingRepo) GetByManageTokenHash(_ context.Context, hash string) (*domain.Booking, error) {
	if b, ok := s.byTokenHash[hash]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *stubBookingRepo) ListByBusiness(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return s.listed, nil
}

func (s *stubBookingRepo) ListDueReminders(_ context.Context, _, _ time.Time) ([]*domain.Booking, error) {
	return s.due, nil
}

func (s *stubBookingRepo) MarkReminderSent(_ context.Context, id int64) error {
	s.reminded[id] = true
	return nil
}

func (s *stubBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	s.updatedStatus[id] = status
	return nil
}

func (s *stubBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason *string) error {
	s.cancelled[id] = status
	s.cancelReasons[id] = reason
	return nil
}

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

type stubMailer struct {
	sent []string
}

func (s *stubMailer) Send(to, _, _ string) error {
	s.sent = append(s.sent, to)
	return nil
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func testBusiness() *domain.Business {
	return &domain.Business{
		ID:                 1,
		Name:               "Test Salon",
		Timezone:           "UTC",
		EmailNotifications: true,
		IsActive:           true,
	}
}

func testService() *domain.Service {
	return &domain.Service{ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true}
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		BusinessID: 1,
		ServiceID:  10,
		StartAt:    testNow.Add(48 * time.Hour),
		EndAt:      testNow.Add(48*time.Hour + 30*time.Minute),
		Status:     status,
		Customer: domain.Customer{
			FullName: "Jane Doe",
			Phone:    "+38970111222",
		},
	}
}

func newTestService(repo *stubBookingRepo, business *domain.Business) (*Service, *stubMailer) {
	mail := &stubMailer{}
	svc := NewService(repo, &stubBusinessRepo{business: business}, &stubServiceRepo{service: testService()},
		mail, "UTC", nopLogger{})
	svc.timeProvider = &fixedTime{t: testNow}
	return svc, mail
}

// UpdateStatus

func TestUpdateStatus_PendingToConfirmed(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusPending)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "CONFIRMED",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus[5])
}

func TestUpdateStatus_CancelGoesThroughCancel(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusConfirmed)
	svc, _ := newTestService(repo, testBusiness())

	reason := ptr.Ptr("мастер заболел")
	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID:         1,
		Status:             "CANCELLED_BY_BUSINESS",
		CancellationReason: reason,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByBusiness, repo.cancelled[5])
	assert.Equal(t, reason, repo.cancelReasons[5])
	assert.Empty(t, repo.updatedStatus)
}

func TestUpdateStatus_TerminalStatusRejected(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusCompleted)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_PendingCannotComplete(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusPending)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "COMPLETED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_TransitionErrorNamesStatuses(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusPending)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "COMPLETED",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Ошибка называет текущий и запрошенный статусы
	var trErr *TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, domain.StatusPending, trErr.From)
	assert.Equal(t, domain.StatusCompleted, trErr.To)
}

func TestUpdateStatus_ForeignBookingDenied(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusPending)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 2,
		Status:     "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	svc, _ := newTestService(newStubBookingRepo(), testBusiness())

	err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_InvalidStatusString(t *testing.T) {
	repo := newStubBookingRepo()
	repo.byID[5] = testBooking(5, domain.StatusPending)
	svc, _ := newTestService(repo, testBusiness())

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		BusinessID: 1,
		Status:     "APPROVED",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// GetByToken / CancelByToken

func withToken(b *domain.Booking, raw string) *domain.Booking {
	hash := managetoken.Hash(raw)
	b.ManageTokenHash = &hash
	return b
}

func TestGetByToken(t *testing.T) {
	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusConfirmed), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, testBusiness())

	resp, err := svc.GetByToken(context.Background(), "raw-token")
	require.NoError(t, err)

	assert.Equal(t, "Test Salon", resp.BusinessName)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, "2026-09-12", resp.Date)
	assert.Equal(t, "12:00", resp.StartTime)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.True(t, resp.CanCancel)
}

func TestGetByToken_CanCancelRespectsWindow(t *testing.T) {
	business := testBusiness()
	business.Policies.CancelWindowHours = 72 // до визита 48 часов, окно уже закрыто

	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusConfirmed), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, business)

	resp, err := svc.GetByToken(context.Background(), "raw-token")
	require.NoError(t, err)
	assert.False(t, resp.CanCancel)
}

func TestGetByToken_UnknownToken(t *testing.T) {
	svc, _ := newTestService(newStubBookingRepo(), testBusiness())

	_, err := svc.GetByToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByToken(t *testing.T) {
	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusConfirmed), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, testBusiness())

	err := svc.CancelByToken(context.Background(), "raw-token", &models.CancelByTokenRequest{
		Reason: ptr.Ptr("не смогу прийти"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelled[5])
}

func TestCancelByToken_TerminalStatus(t *testing.T) {
	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusCancelledByClient), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, testBusiness())

	err := svc.CancelByToken(context.Background(), "raw-token", &models.CancelByTokenRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelByToken_InsideCancelWindow(t *testing.T) {
	business := testBusiness()
	business.Policies.CancelWindowHours = 72

	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusConfirmed), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, business)

	err := svc.CancelByToken(context.Background(), "raw-token", &models.CancelByTokenRequest{})
	assert.ErrorIs(t, err, ErrCancelWindowPassed)
	assert.Empty(t, repo.cancelled)
}

func TestCancelByToken_WindowErrorNamesThreshold(t *testing.T) {
	business := testBusiness()
	business.Policies.CancelWindowHours = 72

	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusConfirmed), "raw-token")
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, business)

	err := svc.CancelByToken(context.Background(), "raw-token", &models.CancelByTokenRequest{})
	require.ErrorIs(t, err, ErrCancelWindowPassed)

	// Ошибка называет порог окна отмены, установленный бизнесом
	var cwErr *CancelWindowError
	require.ErrorAs(t, err, &cwErr)
	assert.Equal(t, 72, cwErr.WindowHours)
	assert.Contains(t, err.Error(), "72h")
}

func TestCancelByToken_NoWindowRestriction(t *testing.T) {
	// Окно 0 - отмена разрешена вплоть до начала визита
	repo := newStubBookingRepo()
	booking := withToken(testBooking(5, domain.StatusPending), "raw-token")
	booking.StartAt = testNow.Add(10 * time.Minute)
	repo.byTokenHash[*booking.ManageTokenHash] = booking
	svc, _ := newTestService(repo, testBusiness())

	err := svc.CancelByToken(context.Background(), "raw-token", &models.CancelByTokenRequest{})
	require.NoError(t, err)
}

// GetBusinessBookings

func TestGetBusinessBookings(t *testing.T) {
	repo := newStubBookingRepo()
	repo.listed = []*domain.Booking{
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusPending),
	}
	svc, _ := newTestService(repo, testBusiness())

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{BusinessID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "Jane Doe", resp.Bookings[0].CustomerName)
}

func TestGetBusinessBookings_InvalidStatusFilter(t *testing.T) {
	svc, _ := newTestService(newStubBookingRepo(), testBusiness())

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		BusinessID: 1,
		Status:     ptr.Ptr("APPROVED"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// RunReminders

func TestRunReminders(t *testing.T) {
	repo := newStubBookingRepo()

	withEmail := testBooking(1, domain.StatusConfirmed)
	withEmail.Customer.Email = ptr.Ptr("jane@example.com")
	noEmail := testBooking(2, domain.StatusConfirmed)
	repo.due = []*domain.Booking{withEmail, noEmail}

	svc, mail := newTestService(repo, testBusiness())

	resp, err := svc.RunReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, []string{"jane@example.com"}, mail.sent)

	// Обе строки помечены - без email напоминание пропускается навсегда
	assert.True(t, repo.reminded[1])
	assert.True(t, repo.reminded[2])
}

func TestRunReminders_InactiveServiceMarked(t *testing.T) {
	// Услуга деактивирована после бронирования - строка помечается,
	// а не переобрабатывается с ошибкой на каждом прогоне
	repo := newStubBookingRepo()
	due := testBooking(1, domain.StatusConfirmed)
	due.Customer.Email = ptr.Ptr("jane@example.com")
	repo.due = []*domain.Booking{due}

	mail := &stubMailer{}
	svc := NewService(repo, &stubBusinessRepo{business: testBusiness()},
		&stubServiceRepo{err: serviceRepo.ErrServiceNotFound}, mail, "UTC", nopLogger{})
	svc.timeProvider = &fixedTime{t: testNow}

	resp, err := svc.RunReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Sent)
	assert.Empty(t, mail.sent)
	assert.True(t, repo.reminded[1])
}

func TestRunReminders_NotificationsDisabled(t *testing.T) {
	business := testBusiness()
	business.EmailNotifications = false

	repo := newStubBookingRepo()
	due := testBooking(1, domain.StatusConfirmed)
	due.Customer.Email = ptr.Ptr("jane@example.com")
	repo.due = []*domain.Booking{due}

	svc, mail := newTestService(repo, business)

	resp, err := svc.RunReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Sent)
	assert.Empty(t, mail.sent)
	assert.True(t, repo.reminded[1])
}
