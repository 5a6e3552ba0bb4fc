package closure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/psqlbuilder"
)

var closureColumns = []string{
	"id",
	"business_id",
	"type",
	"date::text AS date",
	"start_time",
	"end_time",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с закрытиями (праздники и перерывы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое закрытие
func (r *Repository) Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closures").
		Columns(
			"business_id",
			"type",
			"date",
			"start_time",
			"end_time",
			"note",
		).
		Values(
			closure.BusinessID,
			closure.Type,
			closure.Date,
			closure.StartTime,
			closure.EndTime,
			closure.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closure.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	closure.CreatedAt = createdAt.Time
	closure.UpdatedAt = updatedAt.Time

	return closure, nil
}

// ListByBusinessAndDate получает закрытия бизнеса на конкретную дату
func (r *Repository) ListByBusinessAndDate(ctx context.Context, businessID int64, date string) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closureColumns...).
		From("closures").
		Where(squirrel.Eq{"business_id": businessID, "date": date}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanClosures(rows)
}

// ListByBusiness получает все закрытия бизнеса начиная с указанной даты
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, fromDate string) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(closureColumns...).
		From("closures").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("date ASC, start_time ASC NULLS FIRST")

	if fromDate != "" {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": fromDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanClosures(rows)
}

// Delete удаляет закрытие. business_id в условии гарантирует, что бизнес
// не может удалить чужое закрытие
func (r *Repository) Delete(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closures").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClosureNotFound
	}

	return nil
}

// scanClosures сканирует результаты запроса в слайс закрытий
func (r *Repository) scanClosures(rows *sql.Rows) ([]*domain.Closure, error) {
	closures := make([]*domain.Closure, 0)

	for rows.Next() {
		var closure domain.Closure
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&closure.ID,
			&closure.BusinessID,
			&closure.Type,
			&closure.Date,
			&closure.StartTime,
			&closure.EndTime,
			&closure.Note,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanClosures - scan row: %v", ErrScanRow, err)
		}

		closure.CreatedAt = createdAt.Time
		closure.UpdatedAt = updatedAt.Time

		closures = append(closures, &closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanClosures - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}
