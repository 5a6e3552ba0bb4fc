package workinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/psqlbuilder"
)

var workingHoursColumns = []string{
	"id",
	"business_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBusinessAndDay получает рабочие интервалы бизнеса на день недели (0=воскресенье).
// Несколько строк на день - раздельные смены
func (r *Repository) ListByBusinessAndDay(ctx context.Context, businessID int64, dayOfWeek int) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"business_id": businessID, "day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWorkingHours(rows)
}

// ListByBusiness получает полное недельное расписание бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWorkingHours(rows)
}

// ReplaceForBusiness атомарно заменяет недельное расписание бизнеса.
// Вызывается только внутри транзакции (executor берётся из контекста):
// сначала удаляются все строки бизнеса, затем вставляется новый набор
func (r *Repository) ReplaceForBusiness(ctx context.Context, businessID int64, hours []*domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("business_id", "day_of_week", "start_time", "end_time")

	for _, wh := range hours {
		insertBuilder = insertBuilder.Values(businessID, wh.DayOfWeek, wh.StartTime, wh.EndTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanWorkingHours сканирует результаты запроса в слайс рабочих интервалов
func (r *Repository) scanWorkingHours(rows *sql.Rows) ([]*domain.WorkingHours, error) {
	hours := make([]*domain.WorkingHours, 0)

	for rows.Next() {
		var wh domain.WorkingHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&wh.ID,
			&wh.BusinessID,
			&wh.DayOfWeek,
			&wh.StartTime,
			&wh.EndTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanWorkingHours - scan row: %v", ErrScanRow, err)
		}

		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time

		hours = append(hours, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
