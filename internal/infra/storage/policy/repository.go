package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

// studioPolicyID политика одна на студию
const studioPolicyID = 1

// Repository репозиторий политики бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущую политику студии
func (r *Repository) Get(ctx context.Context) (*domain.Policy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"reservation_lead_minutes",
		"cancellation_lead_minutes",
		"updated_at",
	).
		From("studio_policy").
		Where(squirrel.Eq{"id": studioPolicyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.Policy
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ReservationLeadMinutes,
		&policy.CancellationLeadMinutes,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %w", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// Upsert сохраняет политику студии, создавая запись при первом обращении
func (r *Repository) Upsert(ctx context.Context, policy *domain.Policy) (*domain.Policy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studio_policy").
		Columns("id", "reservation_lead_minutes", "cancellation_lead_minutes", "updated_at").
		Values(studioPolicyID, policy.ReservationLeadMinutes, policy.CancellationLeadMinutes, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			reservation_lead_minutes = EXCLUDED.reservation_lead_minutes,
			cancellation_lead_minutes = EXCLUDED.cancellation_lead_minutes,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
