package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

// Repository репозиторий занятий
// Занятия создаются внешней системой расписания, здесь только чтение и смена статуса.
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

func (r *Repository) selectSession(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"service_id",
		"branch_id",
		"session_date",
		"start_time",
		"end_time",
		"capacity",
		"status",
		"service_name",
		"created_at",
		"updated_at",
	).
		From("class_sessions").
		Where(squirrel.Eq{"id": id})
}

// GetByID получает занятие по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ClassSession, error) {
	query, args, err := r.selectSession(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.get(ctx, "GetByID", query, args)
}

// GetByIDForUpdate получает занятие и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSession, error) {
	builder := r.selectSession(id)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	return r.get(ctx, "GetByIDForUpdate", query, args)
}

func (r *Repository) get(ctx context.Context, op, query string, args []interface{}) (*domain.ClassSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var s domain.ClassSession
	var serviceName sql.NullString

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ServiceID,
		&s.BranchID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.Status,
		&serviceName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %w", ErrScanRow, op, err)
	}

	if serviceName.Valid {
		s.ServiceName = &serviceName.String
	}
	s.Date = domain.CalendarDay(s.Date, r.loc)

	// Без корректного времени начала политика не может быть применена
	if err := s.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s - session=%d start_time=%q: %v", ErrInvalidRow, op, s.ID, s.StartTime, err)
	}
	if s.Capacity < 0 {
		return nil, fmt.Errorf("%w: %s - session=%d capacity=%d", ErrInvalidRow, op, s.ID, s.Capacity)
	}

	return &s, nil
}

// UpdateStatus меняет статус занятия
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_sessions").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
