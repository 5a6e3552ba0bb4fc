package business

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/psqlbuilder"
)

// Repository репозиторий для чтения данных бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активный бизнес по ID вместе с политиками бронирования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"slug",
		"phone",
		"email",
		"address",
		"timezone",
		"auto_confirm",
		"cancel_window_hours",
		"min_lead_time_minutes",
		"email_notifications",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.Slug,
		&business.Phone,
		&business.Email,
		&business.Address,
		&business.Timezone,
		&business.Policies.AutoConfirm,
		&business.Policies.CancelWindowHours,
		&business.Policies.MinLeadTimeMinutes,
		&business.EmailNotifications,
		&business.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %v", ErrScanRow, err)
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}
