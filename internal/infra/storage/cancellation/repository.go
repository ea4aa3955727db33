package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/dbmetrics"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/psqlbuilder"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// Repository репозиторий журнала отмен. Журнал только растет: строки не
// редактируются и не удаляются, классификация (is_late) фиксируется в момент отмены.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const cancellationColumns = "id, member_id, date, start_time, end_time, cancelled_by, is_late, reason, created_at"

// Create записывает отмену в журнал.
// Повторная отмена того же занятия отклоняется уникальным ограничением.
func (r *Repository) Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellations").
		Columns("member_id", "date", "start_time", "end_time", "cancelled_by", "is_late", "reason").
		Values(c.MemberID, c.Date, c.StartTime, c.EndTime, c.CancelledBy, c.IsLate, c.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	return c, nil
}

// GetByOccurrence находит отмену конкретного занятия члена клуба
func (r *Repository) GetByOccurrence(ctx context.Context, memberID int64, date time.Time, start, end types.TimeString) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cancellationColumns).
		From("cancellations").
		Where(squirrel.Eq{
			"member_id":  memberID,
			"date":       date,
			"start_time": start,
			"end_time":   end,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOccurrence - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Cancellation
	var reason sql.NullString
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.MemberID, &c.Date, &c.StartTime, &c.EndTime,
		&c.CancelledBy, &c.IsLate, &reason, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: GetByOccurrence - scan row: %v", ErrScanRow, err)
	}
	if reason.Valid {
		c.Reason = &reason.String
	}
	c.CreatedAt = createdAt.Time
	return &c, nil
}

// ListByDate получает все отмены на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]domain.Cancellation, error) {
	return r.list(ctx, squirrel.Eq{"date": date})
}

// ListByMemberMonth получает отмены члена клуба за период месяца
func (r *Repository) ListByMemberMonth(ctx context.Context, memberID int64, from, to time.Time) ([]domain.Cancellation, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"member_id": memberID},
		squirrel.GtOrEq{"date": from},
		squirrel.LtOrEq{"date": to},
	})
}

// ListByDateRange получает все отмены за период
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Cancellation, error) {
	return r.list(ctx, squirrel.And{
		squirrel.GtOrEq{"date": from},
		squirrel.LtOrEq{"date": to},
	})
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cancellationColumns).
		From("cancellations").
		Where(where).
		OrderBy("date ASC, start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cancellations := make([]domain.Cancellation, 0)
	for rows.Next() {
		var c domain.Cancellation
		var reason sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.MemberID, &c.Date, &c.StartTime, &c.EndTime,
			&c.CancelledBy, &c.IsLate, &reason, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		if reason.Valid {
			c.Reason = &reason.String
		}
		c.CreatedAt = createdAt.Time
		cancellations = append(cancellations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}
	return cancellations, nil
}
