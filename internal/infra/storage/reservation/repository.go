package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"session_id",
	"client_id",
	"client_plan_id",
	"status",
	"cancelled_at",
	"minutes_before_start",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями мест
type Repository struct {
	db  DBExecutor
	loc *time.Location // часовой пояс студии для дат занятий
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Create сохраняет новую бронь и проставляет ей ID
// Частичный уникальный индекс (session_id, client_id) WHERE status = 'active'
// страхует от двойной записи, если блокировка занятия была обойдена.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"session_id",
			"client_id",
			"client_plan_id",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			reservation.SessionID,
			reservation.ClientID,
			reservation.ClientPlanID,
			reservation.Status,
			reservation.CreatedAt,
			reservation.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: session=%d client=%d", ErrDuplicateActive, reservation.SessionID, reservation.ClientID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// GetActiveBySession получает активные брони занятия в порядке создания
func (r *Repository) GetActiveBySession(ctx context.Context, sessionID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"session_id": sessionID, "status": domain.ReservationActive}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySession - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveBySession - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySession - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// UpdateCancellation фиксирует отмену брони
// Обновляет только активную бронь: повторная отмена вернёт ErrNotActive.
func (r *Repository) UpdateCancellation(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", reservation.Status).
		Set("cancelled_at", reservation.CancelledAt).
		Set("minutes_before_start", reservation.MinutesBeforeStart).
		Set("updated_at", reservation.UpdatedAt).
		Where(squirrel.Eq{"id": reservation.ID, "status": domain.ReservationActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCancellation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCancellation - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCancellation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrNotActive, reservation.ID)
	}

	return nil
}

// GetByClientWithFilter получает историю бронирований клиента вместе с данными занятия
// Поддерживает фильтрацию по:
// - Статусу брони (Status) - опционально
// - Периоду по дате занятия (From, To) - опционально, включительно
//
// Сортировка: сначала ближайшие к текущему моменту занятия (дата и время по убыванию).
func (r *Repository) GetByClientWithFilter(ctx context.Context, filter domain.ClientReservationsFilter) ([]*domain.ClientActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultActivityLimit
	}
	if limit > domain.MaxActivityLimit {
		limit = domain.MaxActivityLimit
	}

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.session_id",
		"r.client_id",
		"r.client_plan_id",
		"r.status",
		"r.cancelled_at",
		"r.minutes_before_start",
		"r.created_at",
		"r.updated_at",
		"s.session_date",
		"s.start_time",
		"s.end_time",
		"s.branch_id",
		"s.service_name",
	).
		From("reservations r").
		Join("class_sessions s ON s.id = r.session_id").
		Where(squirrel.Eq{"r.client_id": filter.ClientID})

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.session_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.session_date": filter.To.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.
		OrderBy("s.session_date DESC", "s.start_time DESC", "r.id DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	activities := make([]*domain.ClientActivity, 0)
	for rows.Next() {
		var a domain.ClientActivity
		var clientPlanID sql.NullInt64
		var cancelledAt sql.NullTime
		var minutesBefore sql.NullInt64
		var serviceName sql.NullString

		err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.ClientID,
			&clientPlanID,
			&a.Status,
			&cancelledAt,
			&minutesBefore,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.SessionDate,
			&a.StartTime,
			&a.EndTime,
			&a.BranchID,
			&serviceName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByClientWithFilter - scan row: %w", ErrScanRow, err)
		}

		applyNullable(&a.Reservation, clientPlanID, cancelledAt, minutesBefore)
		a.SessionDate = domain.CalendarDay(a.SessionDate, r.loc)
		if serviceName.Valid {
			a.ServiceName = &serviceName.String
		}

		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByClientWithFilter - rows error: %w", ErrScanRow, err)
	}

	return activities, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует строку с колонками reservationColumns
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var clientPlanID sql.NullInt64
	var cancelledAt sql.NullTime
	var minutesBefore sql.NullInt64

	err := row.Scan(
		&reservation.ID,
		&reservation.SessionID,
		&reservation.ClientID,
		&clientPlanID,
		&reservation.Status,
		&cancelledAt,
		&minutesBefore,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyNullable(&reservation, clientPlanID, cancelledAt, minutesBefore)
	return &reservation, nil
}

func applyNullable(r *domain.Reservation, clientPlanID sql.NullInt64, cancelledAt sql.NullTime, minutesBefore sql.NullInt64) {
	if clientPlanID.Valid {
		id := clientPlanID.Int64
		r.ClientPlanID = &id
	}
	if cancelledAt.Valid {
		at := cancelledAt.Time
		r.CancelledAt = &at
	}
	if minutesBefore.Valid {
		mb := int(minutesBefore.Int64)
		r.MinutesBeforeStart = &mb
	}
}
