package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/dbmetrics"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/psqlbuilder"
)

// Repository репозиторий месячных счетов. Счет — производная величина,
// поэтому запись идемпотентна: повторная генерация перезаписывает строку.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет счет за месяц, перезаписывая предыдущую генерацию
func (r *Repository) Upsert(ctx context.Context, inv *domain.MonthlyInvoice) (*domain.MonthlyInvoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("monthly_invoices").
		Columns(
			"member_id", "year", "month",
			"classes_scheduled", "classes_billed",
			"unit_price", "gross_amount", "discount_pct", "net_amount",
			"generated_at",
		).
		Values(
			inv.MemberID, inv.Year, inv.Month,
			inv.ClassesScheduled, inv.ClassesBilled,
			inv.UnitPrice, inv.GrossAmount, inv.DiscountPct, inv.NetAmount,
			inv.GeneratedAt,
		).
		Suffix(`ON CONFLICT (member_id, year, month) DO UPDATE SET
			classes_scheduled = EXCLUDED.classes_scheduled,
			classes_billed = EXCLUDED.classes_billed,
			unit_price = EXCLUDED.unit_price,
			gross_amount = EXCLUDED.gross_amount,
			discount_pct = EXCLUDED.discount_pct,
			net_amount = EXCLUDED.net_amount,
			generated_at = EXCLUDED.generated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return inv, nil
}

// GetByMemberMonth получает сохраненный счет члена клуба за месяц
func (r *Repository) GetByMemberMonth(ctx context.Context, memberID int64, year, month int) (*domain.MonthlyInvoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"member_id", "year", "month",
		"classes_scheduled", "classes_billed",
		"unit_price", "gross_amount", "discount_pct", "net_amount",
		"generated_at",
	).
		From("monthly_invoices").
		Where(squirrel.Eq{"member_id": memberID, "year": year, "month": month}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberMonth - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.MonthlyInvoice
	var generatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.MemberID, &inv.Year, &inv.Month,
		&inv.ClassesScheduled, &inv.ClassesBilled,
		&inv.UnitPrice, &inv.GrossAmount, &inv.DiscountPct, &inv.NetAmount,
		&generatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: GetByMemberMonth - scan row: %v", ErrScanRow, err)
	}
	inv.GeneratedAt = generatedAt.Time
	return &inv, nil
}
