package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"business_id",
	"service_id",
	"start_at",
	"end_at",
	"status",
	"customer_name",
	"customer_phone",
	"customer_email",
	"note",
	"manage_token_hash",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Занятость интервала дополнительно защищена exclusion constraint в БД
// (business_id + tstzrange(start_at, end_at) для активных статусов), поэтому
// при конкурентной вставке пересекающегося интервала ровно одна вставка
// завершится ошибкой - она маппится в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"business_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
			"customer_name",
			"customer_phone",
			"customer_email",
			"note",
			"manage_token_hash",
		).
		Values(
			booking.BusinessID,
			booking.ServiceID,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.Customer.FullName,
			booking.Customer.Phone,
			booking.Customer.Email,
			booking.Note,
			booking.ManageTokenHash,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if IsSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByManageTokenHash получает бронирование по хэшу manage-токена клиента
func (r *Repository) GetByManageTokenHash(ctx context.Context, tokenHash string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"manage_token_hash": tokenHash}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByManageTokenHash - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByManageTokenHash - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByBusiness получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (From, To) - опционально, полуоткрытый интервал [From, To)
// - Статусу (Status) - опционально
// - Включению неактивных бронирований (IncludeInactive)
func (r *Repository) ListByBusiness(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListConfirmedBetween получает подтверждённые бронирования бизнеса,
// пересекающие интервал [from, to). Используется движком доступности:
// PENDING-бронирования отображаемую доступность не блокируют.
//
// Если используется транзакция (usecase создания бронирования), добавляется
// FOR UPDATE для блокировки конкурирующих созданий на том же интервале.
func (r *Repository) ListConfirmedBetween(ctx context.Context, businessID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"business_id": businessID,
			"status":      domain.StatusConfirmed,
		}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListDueReminders получает подтверждённые бронирования, начинающиеся в
// интервале [from, to), по которым напоминание ещё не отправлялось
func (r *Repository) ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		Where("reminder_sent_at IS NULL").
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// MarkReminderSent помечает бронирование как получившее напоминание
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// IsSlotConflict распознаёт ошибки БД, означающие занятый интервал:
// 23P01 - exclusion_violation (пересечение активных интервалов)
// 23505 - unique_violation
// 40001 - serialization_failure (конфликт сериализуемых транзакций)
//
// Экспортируется, потому что 40001 может прийти и на COMMIT - такую
// ошибку возвращает менеджер транзакций, а не методы репозитория
func IsSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "23P01", "23505", "40001":
		return true
	}
	return false
}

func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.Customer.FullName,
		&booking.Customer.Phone,
		&booking.Customer.Email,
		&booking.Note,
		&booking.ManageTokenHash,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.BusinessID,
			&booking.ServiceID,
			&booking.StartAt,
			&booking.EndAt,
			&booking.Status,
			&booking.Customer.FullName,
			&booking.Customer.Phone,
			&booking.Customer.Email,
			&booking.Note,
			&booking.ManageTokenHash,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
