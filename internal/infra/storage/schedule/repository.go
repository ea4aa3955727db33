package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/dbmetrics"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/psqlbuilder"
)

// Repository репозиторий каталога расписания: недельный шаблон слотов,
// календарь исключений и реестр отсутствий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertSlotDefinition создает либо обновляет определение слота недельного
// шаблона по ключу (weekday, slot_number)
func (r *Repository) UpsertSlotDefinition(ctx context.Context, def *domain.SlotDefinition) (*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_definitions").
		Columns("weekday", "slot_number", "start_time", "end_time", "capacity", "active").
		Values(def.Weekday, def.SlotNumber, def.StartTime, def.EndTime, def.Capacity, def.Active).
		Suffix(`ON CONFLICT (weekday, slot_number) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			capacity = EXCLUDED.capacity,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSlotDefinition - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&def.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSlotDefinition - execute insert: %v", ErrExecQuery, err)
	}

	def.CreatedAt = createdAt.Time
	def.UpdatedAt = updatedAt.Time
	return def, nil
}

// ListSlotDefinitions получает активные определения слотов недельного шаблона
func (r *Repository) ListSlotDefinitions(ctx context.Context) ([]domain.SlotDefinition, error) {
	return r.listSlots(ctx, squirrel.Eq{"active": true})
}

// ListSlotDefinitionsByWeekday получает активные определения слотов одного дня недели
func (r *Repository) ListSlotDefinitionsByWeekday(ctx context.Context, weekday int) ([]domain.SlotDefinition, error) {
	return r.listSlots(ctx, squirrel.Eq{"active": true, "weekday": weekday})
}

func (r *Repository) listSlots(ctx context.Context, where squirrel.Eq) ([]domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "weekday", "slot_number", "start_time", "end_time", "capacity", "active",
		"created_at", "updated_at",
	).
		From("slot_definitions").
		Where(where).
		OrderBy("weekday ASC, slot_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	defs := make([]domain.SlotDefinition, 0)
	for rows.Next() {
		var d domain.SlotDefinition
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.Weekday, &d.SlotNumber, &d.StartTime, &d.EndTime, &d.Capacity, &d.Active,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listSlots - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		d.UpdatedAt = updatedAt.Time
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSlots - rows error: %v", ErrScanRow, err)
	}
	return defs, nil
}

// CreateExceptionDay создает исключение календаря на дату.
// Вторая активная строка на ту же дату отклоняется уникальным индексом.
func (r *Repository) CreateExceptionDay(ctx context.Context, ex *domain.ExceptionDay) (*domain.ExceptionDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	customSlots, err := json.Marshal(ex.CustomSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateExceptionDay - marshal custom slots: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("exception_days").
		Columns("date", "kind", "custom_slots", "active").
		Values(ex.Date, ex.Kind, customSlots, ex.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateExceptionDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ex.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrExceptionExists
		}
		return nil, fmt.Errorf("%w: CreateExceptionDay - execute insert: %v", ErrExecQuery, err)
	}

	ex.CreatedAt = createdAt.Time
	ex.UpdatedAt = updatedAt.Time
	return ex, nil
}

// GetExceptionByDate получает активное исключение календаря на дату
func (r *Repository) GetExceptionByDate(ctx context.Context, date time.Time) (*domain.ExceptionDay, error) {
	exceptions, err := r.ListExceptionsInRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(exceptions) == 0 {
		return nil, ErrExceptionNotFound
	}
	return &exceptions[0], nil
}

// ListExceptionsInRange получает активные исключения календаря за период (включительно)
func (r *Repository) ListExceptionsInRange(ctx context.Context, from, to time.Time) ([]domain.ExceptionDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "date", "kind", "custom_slots", "active", "created_at", "updated_at",
	).
		From("exception_days").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.ExceptionDay, 0)
	for rows.Next() {
		var ex domain.ExceptionDay
		var rawSlots []byte
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&ex.ID, &ex.Date, &ex.Kind, &rawSlots, &ex.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListExceptionsInRange - scan row: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(rawSlots, &ex.CustomSlots); err != nil {
			return nil, fmt.Errorf("%w: ListExceptionsInRange - unmarshal custom slots: %v", ErrScanRow, err)
		}
		ex.CreatedAt = createdAt.Time
		ex.UpdatedAt = updatedAt.Time
		exceptions = append(exceptions, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsInRange - rows error: %v", ErrScanRow, err)
	}
	return exceptions, nil
}

// DeactivateException снимает исключение календаря
func (r *Repository) DeactivateException(ctx context.Context, id int64) error {
	return r.deactivate(ctx, "exception_days", id, ErrExceptionNotFound)
}

// CreateAbsenceOverride создает административное отсутствие
func (r *Repository) CreateAbsenceOverride(ctx context.Context, a *domain.AbsenceOverride) (*domain.AbsenceOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocked := make(pq.Int64Array, 0, len(a.BlockedSlotNumbers))
	for _, n := range a.BlockedSlotNumbers {
		blocked = append(blocked, int64(n))
	}

	query, args, err := psqlbuilder.Insert("absence_overrides").
		Columns("kind", "start_date", "end_date", "blocked_slot_numbers", "active").
		Values(a.Kind, a.StartDate, a.EndDate, blocked, a.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAbsenceOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAbsenceOverride - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// ListAbsencesInRange получает активные отсутствия, пересекающие период
func (r *Repository) ListAbsencesInRange(ctx context.Context, from, to time.Time) ([]domain.AbsenceOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Отсутствие пересекает период, если началось не позже его конца и
	// (для диапазона) закончилось не раньше его начала
	query, args, err := psqlbuilder.Select(
		"id", "kind", "start_date", "end_date", "blocked_slot_numbers", "active",
		"created_at", "updated_at",
	).
		From("absence_overrides").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": from},
		}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAbsencesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAbsencesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	absences := make([]domain.AbsenceOverride, 0)
	for rows.Next() {
		var a domain.AbsenceOverride
		var blocked pq.Int64Array
		var endDate sql.NullTime
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.Kind, &a.StartDate, &endDate, &blocked, &a.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAbsencesInRange - scan row: %v", ErrScanRow, err)
		}
		if endDate.Valid {
			end := endDate.Time
			a.EndDate = &end
		}
		a.BlockedSlotNumbers = make([]int, 0, len(blocked))
		for _, n := range blocked {
			a.BlockedSlotNumbers = append(a.BlockedSlotNumbers, int(n))
		}
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAbsencesInRange - rows error: %v", ErrScanRow, err)
	}
	return absences, nil
}

// DeactivateAbsence снимает административное отсутствие
func (r *Repository) DeactivateAbsence(ctx context.Context, id int64) error {
	return r.deactivate(ctx, "absence_overrides", id, ErrAbsenceNotFound)
}

func (r *Repository) deactivate(ctx context.Context, table string, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deactivate %s - build update query: %v", ErrBuildQuery, table, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: deactivate %s - execute update: %v", ErrExecQuery, table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deactivate %s - get rows affected: %v", ErrExecQuery, table, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// isUniqueViolation распознает нарушение уникального ограничения (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
