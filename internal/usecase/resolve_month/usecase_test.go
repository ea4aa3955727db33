package resolve_month

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// --- фейки ---

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

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

func (r *fakeBookingRepo) ListActiveRecurring(context.Context, time.Time) ([]domain.RecurringBooking, error) {
	return r.recurring, nil
}

func (r *fakeBookingRepo) ListVariableByDateRange(context.Context, time.Time, time.Time) ([]domain.VariableBooking, error) {
	return r.variable, nil
}

type fakeCancellationRepo struct {
	rows []domain.Cancellation
}

func (r *fakeCancellationRepo) ListByDateRange(context.Context, time.Time, time.Time) ([]domain.Cancellation, error) {
	return r.rows, nil
}

// --- сборка ---

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		DefaultCapacity:  4,
		LateCancelCutoff: 24 * time.Hour,
		Location:         time.UTC,
	}
}

func newTestUseCase(schedule *fakeScheduleRepo, bookings *fakeBookingRepo, cancellations *fakeCancellationRepo) *UseCase {
	return NewUseCase(schedule, bookings, cancellations, testEngineConfig(), noopLogger{})
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

func dayByDate(t *testing.T, resp *Response, date time.Time) Day {
	t.Helper()
	for _, d := range resp.Days {
		if d.Date.Equal(date) {
			return d
		}
	}
	t.Fatalf("day %s not in response", date.Format(domain.DateFormat))
	return Day{}
}

// --- тесты ---

func TestExecute_NovemberSchedule(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true,
				EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})

	require.NoError(t, err)
	assert.Equal(t, 30, len(resp.Days))

	// Понедельник 3 ноября: слот с одним занятым местом
	monday := dayByDate(t, resp, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	assert.True(t, monday.Open)
	require.Len(t, monday.Slots, 1)
	assert.Equal(t, 3, monday.Slots[0].AvailableSpots)
	require.Len(t, monday.Slots[0].Occupants, 1)
	assert.Equal(t, string(domain.SourceRecurring), monday.Slots[0].Occupants[0].Source)

	// Суббота 8 ноября закрыта без исключения
	saturday := dayByDate(t, resp, time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC))
	assert.False(t, saturday.Open)
	assert.Empty(t, saturday.Slots)

	// Вторник без шаблона — слотов нет
	tuesday := dayByDate(t, resp, time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, tuesday.Slots)
}

func TestExecute_ExceptionClosesDay(t *testing.T) {
	holiday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		slotDefs: []domain.SlotDefinition{mondaySlotDef()},
		exceptions: []domain.ExceptionDay{
			{ID: 1, Date: holiday, Kind: domain.ExceptionClosedWeekday, Active: true},
		},
	}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})

	require.NoError(t, err)
	assert.False(t, dayByDate(t, resp, holiday).Open)
	// Соседний понедельник работает как обычно
	assert.True(t, dayByDate(t, resp, time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)).Open)
}

func TestExecute_EnabledWeekend(t *testing.T) {
	saturday := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		exceptions: []domain.ExceptionDay{
			{
				ID: 1, Date: saturday, Kind: domain.ExceptionEnabledWeekend, Active: true,
				CustomSlots: []domain.CustomSlot{
					{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00"), Capacity: 6},
				},
			},
		},
	}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})

	require.NoError(t, err)
	day := dayByDate(t, resp, saturday)
	assert.True(t, day.Open)
	require.Len(t, day.Slots, 1)
	assert.Equal(t, 6, day.Slots[0].Capacity)
}

func TestExecute_RecurringBeforeEffectiveFrom(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlotDef()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			// План вступает в силу в середине месяца
			{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true,
				EffectiveFrom: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})

	require.NoError(t, err)
	before := dayByDate(t, resp, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, before.Slots[0].Occupants)
	after := dayByDate(t, resp, time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC))
	assert.Len(t, after.Slots[0].Occupants, 1)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{})

	_, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Year: 1800, Month: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
