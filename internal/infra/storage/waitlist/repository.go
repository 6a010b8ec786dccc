package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий очереди ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySession получает очередь занятия в порядке продвижения
func (r *Repository) GetBySession(ctx context.Context, sessionID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"session_id",
		"client_id",
		"client_plan_id",
		"enqueued_at",
	).
		From("waitlist_entries").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("enqueued_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var e domain.WaitlistEntry
		var clientPlanID sql.NullInt64

		if err := rows.Scan(&e.ID, &e.SessionID, &e.ClientID, &clientPlanID, &e.EnqueuedAt); err != nil {
			return nil, fmt.Errorf("%w: GetBySession - scan row: %w", ErrScanRow, err)
		}
		if clientPlanID.Valid {
			id := clientPlanID.Int64
			e.ClientPlanID = &id
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySession - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// Create ставит клиента в очередь и проставляет записи ID
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("session_id", "client_id", "client_plan_id", "enqueued_at").
		Values(entry.SessionID, entry.ClientID, entry.ClientPlanID, entry.EnqueuedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: session=%d client=%d", ErrDuplicateEntry, entry.SessionID, entry.ClientID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return entry, nil
}

// Delete удаляет запись из очереди
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
