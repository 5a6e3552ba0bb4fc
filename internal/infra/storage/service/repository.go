package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/psqlbuilder"
)

// Repository репозиторий для чтения услуг бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активную услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
		"buffer_minutes",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.BufferMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
