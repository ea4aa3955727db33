package booking

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

// Repository репозиторий бронирований: еженедельные (recurring) и разовые (variable)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const recurringColumns = "id, member_id, weekday, slot_number, plan_tier, unit_price, active, effective_from, created_at, updated_at"

// CreateRecurring создает строку еженедельного бронирования
func (r *Repository) CreateRecurring(ctx context.Context, b *domain.RecurringBooking) (*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_bookings").
		Columns("member_id", "weekday", "slot_number", "plan_tier", "unit_price", "active", "effective_from").
		Values(b.MemberID, b.Weekday, b.SlotNumber, b.PlanTier, b.UnitPrice, b.Active, b.EffectiveFrom).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecurring - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecurring - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// ListRecurringByWeekday получает активные еженедельные бронирования дня недели,
// вступившие в силу не позже указанной даты
func (r *Repository) ListRecurringByWeekday(ctx context.Context, weekday int, asOf time.Time) ([]domain.RecurringBooking, error) {
	return r.listRecurring(ctx, squirrel.And{
		squirrel.Eq{"active": true, "weekday": weekday},
		squirrel.LtOrEq{"effective_from": asOf},
	})
}

// ListActiveRecurring получает все активные еженедельные бронирования,
// вступившие в силу не позже указанной даты
func (r *Repository) ListActiveRecurring(ctx context.Context, asOf time.Time) ([]domain.RecurringBooking, error) {
	return r.listRecurring(ctx, squirrel.And{
		squirrel.Eq{"active": true},
		squirrel.LtOrEq{"effective_from": asOf},
	})
}

// ListRecurringByMember получает активные еженедельные бронирования члена клуба
func (r *Repository) ListRecurringByMember(ctx context.Context, memberID int64) ([]domain.RecurringBooking, error) {
	return r.listRecurring(ctx, squirrel.Eq{"active": true, "member_id": memberID})
}

func (r *Repository) listRecurring(ctx context.Context, where squirrel.Sqlizer) ([]domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recurringColumns).
		From("recurring_bookings").
		Where(where).
		OrderBy("weekday ASC, slot_number ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listRecurring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listRecurring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.RecurringBooking, 0)
	for rows.Next() {
		b, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listRecurring - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

// DeactivateRecurringByMember снимает все активные еженедельные бронирования члена
// клуба и возвращает их количество. Используется при смене плана.
func (r *Repository) DeactivateRecurringByMember(ctx context.Context, memberID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_bookings").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"member_id": memberID, "active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateRecurringByMember - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateRecurringByMember - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateRecurringByMember - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

const variableColumns = "id, member_id, date, start_time, end_time, status, created_at, updated_at"

// CreateVariable создает разовое бронирование.
// Повторное подтвержденное бронирование того же занятия отклоняется
// частичным уникальным индексом.
func (r *Repository) CreateVariable(ctx context.Context, b *domain.VariableBooking) (*domain.VariableBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("variable_bookings").
		Columns("member_id", "date", "start_time", "end_time", "status").
		Values(b.MemberID, b.Date, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateVariable - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: CreateVariable - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// ListVariableByDate получает разовые бронирования на дату.
// Внутри транзакции строки блокируются через FOR UPDATE, чтобы проверка
// вместимости и вставка были атомарными.
func (r *Repository) ListVariableByDate(ctx context.Context, date time.Time) ([]domain.VariableBooking, error) {
	builder := psqlbuilder.Select(variableColumns).
		From("variable_bookings").
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.listVariable(ctx, builder)
}

// ListVariableByDateRange получает все разовые бронирования за период
func (r *Repository) ListVariableByDateRange(ctx context.Context, from, to time.Time) ([]domain.VariableBooking, error) {
	builder := psqlbuilder.Select(variableColumns).
		From("variable_bookings").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, start_time ASC, id ASC")

	return r.listVariable(ctx, builder)
}

// ListVariableByMemberMonth получает разовые бронирования члена клуба за месяц
func (r *Repository) ListVariableByMemberMonth(ctx context.Context, memberID int64, from, to time.Time) ([]domain.VariableBooking, error) {
	builder := psqlbuilder.Select(variableColumns).
		From("variable_bookings").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, start_time ASC")

	return r.listVariable(ctx, builder)
}

// ListVariableByMember получает все разовые бронирования члена клуба начиная с даты
func (r *Repository) ListVariableByMember(ctx context.Context, memberID int64, from time.Time) ([]domain.VariableBooking, error) {
	builder := psqlbuilder.Select(variableColumns).
		From("variable_bookings").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC, start_time ASC")

	return r.listVariable(ctx, builder)
}

func (r *Repository) listVariable(ctx context.Context, builder squirrel.SelectBuilder) ([]domain.VariableBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listVariable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listVariable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.VariableBooking, 0)
	for rows.Next() {
		b, err := scanVariable(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listVariable - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

// GetVariableByOccurrence находит подтвержденное разовое бронирование члена клуба
// на конкретное занятие
func (r *Repository) GetVariableByOccurrence(ctx context.Context, memberID int64, date time.Time, start, end types.TimeString) (*domain.VariableBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(variableColumns).
		From("variable_bookings").
		Where(squirrel.Eq{
			"member_id":  memberID,
			"date":       date,
			"start_time": start,
			"end_time":   end,
			"status":     domain.VariableConfirmed,
		})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariableByOccurrence - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanVariable(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVariableNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateVariableStatus переводит разовое бронирование в новый статус
func (r *Repository) UpdateVariableStatus(ctx context.Context, id int64, status domain.VariableStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("variable_bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateVariableStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateVariableStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateVariableStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVariableNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecurring(row rowScanner) (*domain.RecurringBooking, error) {
	var b domain.RecurringBooking
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.MemberID, &b.Weekday, &b.SlotNumber, &b.PlanTier, &b.UnitPrice,
		&b.Active, &b.EffectiveFrom, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanRecurring: %v", ErrScanRow, err)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanVariable(row rowScanner) (*domain.VariableBooking, error) {
	var b domain.VariableBooking
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.MemberID, &b.Date, &b.StartTime, &b.EndTime, &b.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanVariable: %v", ErrScanRow, err)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
