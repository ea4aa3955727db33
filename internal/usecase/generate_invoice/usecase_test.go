package generate_invoice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// --- фейки ---

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeScheduleRepo struct {
	slotDefs   []domain.SlotDefinition
	exceptions []domain.ExceptionDay
	absences   []domain.AbsenceOverride
}

func (r *fakeScheduleRepo) ListSlotDefinitions(context.Context) ([]domain.SlotDefinition, error) {
	return r.slotDefs, nil
}

func (r *fakeScheduleRepo) ListExceptionsInRange(context.Context, time.Time, time.Time) ([]domain.ExceptionDay, error) {
	return r.exceptions, nil
}

func (r *fakeScheduleRepo) ListAbsencesInRange(context.Context, time.Time, time.Time) ([]domain.AbsenceOverride, error) {
	return r.absences, nil
}

type fakeBookingRepo struct {
	recurring []domain.RecurringBooking
	variable  []domain.VariableBooking
}

func (r *fakeBookingRepo) ListRecurringByMember(context.Context, int64) ([]domain.RecurringBooking, error) {
	return r.recurring, nil
}

func (r *fakeBookingRepo) ListVariableByMemberMonth(context.Context, int64, time.Time, time.Time) ([]domain.VariableBooking, error) {
	return r.variable, nil
}

type fakeCancellationRepo struct {
	rows []domain.Cancellation
}

func (r *fakeCancellationRepo) ListByMemberMonth(context.Context, int64, time.Time, time.Time) ([]domain.Cancellation, error) {
	return r.rows, nil
}

type fakeInvoiceRepo struct {
	saved *domain.MonthlyInvoice
}

func (r *fakeInvoiceRepo) Upsert(_ context.Context, inv *domain.MonthlyInvoice) (*domain.MonthlyInvoice, error) {
	saved := *inv
	r.saved = &saved
	return &saved, nil
}

type fakeMemberClient struct {
	err error
}

func (c *fakeMemberClient) GetMember(_ context.Context, memberID int64) (*memberservice.Member, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &memberservice.Member{ID: memberID, Active: true}, nil
}

type fakePlanClient struct {
	price    *planservice.TierPrice
	priceErr error
	discount decimal.Decimal

	requestedTier int
}

func (c *fakePlanClient) GetTierPrice(_ context.Context, daysPerWeek int) (*planservice.TierPrice, error) {
	c.requestedTier = daysPerWeek
	if c.priceErr != nil {
		return nil, c.priceErr
	}
	return c.price, nil
}

func (c *fakePlanClient) GetMemberDiscountWithGracefulDegradation(context.Context, int64) decimal.Decimal {
	return c.discount
}

// --- сборка ---

// Ноябрь 2025: суббота 1-го, воскресенье 30-го, четыре полных недели между ними
var generatedAt = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		DefaultCapacity:  4,
		LateCancelCutoff: 24 * time.Hour,
		Location:         time.UTC,
	}
}

func mondaySlotDef() domain.SlotDefinition {
	return domain.SlotDefinition{
		ID:         1,
		Weekday:    1,
		SlotNumber: 1,
		StartTime:  types.TimeString("08:00"),
		EndTime:    types.TimeString("09:00"),
		Capacity:   4,
		Active:     true,
	}
}

func newTestUseCase(schedule *fakeScheduleRepo, bookings *fakeBookingRepo, cancellations *fakeCancellationRepo, invoices *fakeInvoiceRepo, member *fakeMemberClient, plan *fakePlanClient) *UseCase {
	uc := NewUseCase(schedule, bookings, cancellations, invoices, member, plan, &fakeTxManager{}, testEngineConfig(), noopLogger{})
	uc.timeProvider = fixedTime{now: generatedAt}
	return uc
}

func price(unit string) *planservice.TierPrice {
	return &planservice.TierPrice{DaysPerWeek: 1, UnitPrice: decimal.RequireFromString(unit), Currency: "ARS"}
}

// --- тесты ---

func TestExecute_RecurringPlanMonth(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true,
				EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	invoices := &fakeInvoiceRepo{}
	plan := &fakePlanClient{price: price("100"), discount: decimal.Zero}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, invoices, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	// Ноябрь 2025: понедельники 3, 10, 17, 24
	assert.Equal(t, 4, resp.ClassesScheduled)
	assert.Equal(t, 4, resp.ClassesBilled)
	assert.True(t, resp.GrossAmount.Equal(decimal.RequireFromString("400")))
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("400")))
	assert.Equal(t, 1, plan.requestedTier)
	assert.Equal(t, domain.EventInvoiceGenerated, resp.Event.Type)
	require.NotNil(t, invoices.saved)
}

func TestExecute_EarlyCancellationCredits(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true,
				EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	cancellations := &fakeCancellationRepo{
		rows: []domain.Cancellation{
			{
				MemberID:    10,
				Date:        time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
				StartTime:   types.TimeString("08:00"),
				EndTime:     types.TimeString("09:00"),
				CancelledBy: domain.CancelledByMember,
				IsLate:      false,
			},
			{
				MemberID:    10,
				Date:        time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC),
				StartTime:   types.TimeString("08:00"),
				EndTime:     types.TimeString("09:00"),
				CancelledBy: domain.CancelledByMember,
				IsLate:      true,
			},
		},
	}
	plan := &fakePlanClient{price: price("100"), discount: decimal.Zero}
	uc := newTestUseCase(schedule, bookings, cancellations, &fakeInvoiceRepo{}, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	// Ранняя отмена списывается, поздняя тарифицируется
	assert.Equal(t, 4, resp.ClassesScheduled)
	assert.Equal(t, 3, resp.ClassesBilled)
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("300")))
}

func TestExecute_MidMonthPlanStart(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true,
				EffectiveFrom: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
	plan := &fakePlanClient{price: price("100"), discount: decimal.Zero}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	// План действует с 15 ноября: тарифицируются только понедельники 17 и 24
	assert.Equal(t, 2, resp.ClassesScheduled)
	assert.Equal(t, 2, resp.ClassesBilled)
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("200")))
}

func TestExecute_GenerationRunsInTransaction(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true,
				EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	invoices := &fakeInvoiceRepo{}
	tx := &fakeTxManager{}
	uc := NewUseCase(schedule, bookings, &fakeCancellationRepo{}, invoices, &fakeMemberClient{},
		&fakePlanClient{price: price("100"), discount: decimal.Zero}, tx, testEngineConfig(), noopLogger{})
	uc.timeProvider = fixedTime{now: generatedAt}

	_, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	// Загрузка входов и запись счета идут внутри одной транзакции
	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, invoices.saved)
}

func TestExecute_DiscountApplied(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true,
				EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	plan := &fakePlanClient{price: price("100"), discount: decimal.RequireFromString("10")}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	assert.True(t, resp.GrossAmount.Equal(decimal.RequireFromString("400")))
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("360")))
}

func TestExecute_ZeroActivityMonth(t *testing.T) {
	// Цена намеренно не настроена: нулевой счет не должен обращаться к тарифам
	plan := &fakePlanClient{priceErr: planservice.ErrPriceNotFound}
	invoices := &fakeInvoiceRepo{}
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, invoices, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.ClassesBilled)
	assert.True(t, resp.NetAmount.IsZero())
	assert.Equal(t, 0, plan.requestedTier)
	require.NotNil(t, invoices.saved)
}

func TestExecute_VariableOnlyMonthUsesMinTier(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		variable: []domain.VariableBooking{
			{
				MemberID:  10,
				Date:      time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("08:00"),
				EndTime:   types.TimeString("09:00"),
				Status:    domain.VariableConfirmed,
			},
		},
	}
	plan := &fakePlanClient{price: price("120"), discount: decimal.Zero}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, &fakeMemberClient{}, plan)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	require.NoError(t, err)
	assert.Equal(t, domain.MinPlanDaysPerWeek, plan.requestedTier)
	assert.Equal(t, 1, resp.ClassesBilled)
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("120")))
}

func TestExecute_PriceNotConfigured(t *testing.T) {
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 1, Active: true},
		},
	}
	plan := &fakePlanClient{priceErr: planservice.ErrPriceNotFound}
	uc := newTestUseCase(&fakeScheduleRepo{}, bookings, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, &fakeMemberClient{}, plan)

	_, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	assert.ErrorIs(t, err, ErrPriceNotConfigured)
}

func TestExecute_MemberNotFound(t *testing.T) {
	member := &fakeMemberClient{err: memberservice.ErrMemberNotFound}
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, member, &fakePlanClient{})

	_, err := uc.Execute(context.Background(), &Request{MemberID: 10, Year: 2025, Month: 11})

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, &fakeInvoiceRepo{}, &fakeMemberClient{}, &fakePlanClient{})

	tests := []struct {
		name string
		req  Request
	}{
		{"zero member", Request{Year: 2025, Month: 11}},
		{"month out of range", Request{MemberID: 10, Year: 2025, Month: 13}},
		{"year out of range", Request{MemberID: 10, Year: 1990, Month: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
