package cancel_occurrence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	cancellationRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/cancellation"
	scheduleRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/schedule"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// --- фейки ---

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeScheduleRepo struct {
	slotDefs []domain.SlotDefinition
}

func (r *fakeScheduleRepo) ListSlotDefinitionsByWeekday(_ context.Context, weekday int) ([]domain.SlotDefinition, error) {
	var out []domain.SlotDefinition
	for _, d := range r.slotDefs {
		if d.Weekday == weekday {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) GetExceptionByDate(context.Context, time.Time) (*domain.ExceptionDay, error) {
	return nil, scheduleRepo.ErrExceptionNotFound
}

func (r *fakeScheduleRepo) ListAbsencesInRange(context.Context, time.Time, time.Time) ([]domain.AbsenceOverride, error) {
	return nil, nil
}

type fakeBookingRepo struct {
	recurring []domain.RecurringBooking
	variable  []domain.VariableBooking

	statusUpdates map[int64]domain.VariableStatus
}

func (r *fakeBookingRepo) ListRecurringByWeekday(_ context.Context, weekday int, _ time.Time) ([]domain.RecurringBooking, error) {
	var out []domain.RecurringBooking
	for _, b := range r.recurring {
		if b.Weekday == weekday {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListVariableByDate(context.Context, time.Time) ([]domain.VariableBooking, error) {
	return r.variable, nil
}

func (r *fakeBookingRepo) GetVariableByOccurrence(_ context.Context, memberID int64, date time.Time, start, end types.TimeString) (*domain.VariableBooking, error) {
	for i := range r.variable {
		b := &r.variable[i]
		if b.MemberID == memberID && b.Date.Equal(date) && b.StartTime == start && b.EndTime == end {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateVariableStatus(_ context.Context, id int64, status domain.VariableStatus) error {
	if r.statusUpdates == nil {
		r.statusUpdates = make(map[int64]domain.VariableStatus)
	}
	r.statusUpdates[id] = status
	return nil
}

type fakeCancellationRepo struct {
	rows    []domain.Cancellation
	created []domain.Cancellation
}

func (r *fakeCancellationRepo) ListByDate(context.Context, time.Time) ([]domain.Cancellation, error) {
	return r.rows, nil
}

func (r *fakeCancellationRepo) Create(_ context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	for _, existing := range r.rows {
		if existing.Key() == c.Key() {
			return nil, cancellationRepo.ErrAlreadyCancelled
		}
	}
	created := *c
	created.ID = int64(len(r.created) + 1)
	created.CreatedAt = time.Now()
	r.created = append(r.created, created)
	return &created, nil
}

// --- сборка ---

var (
	// Понедельник
	occurrenceDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	// За неделю до занятия — ранняя отмена при cutoff 24h
	earlyNow = time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)

	// За два часа до занятия 08:00 — поздняя отмена
	lateNow = time.Date(2025, 11, 3, 6, 0, 0, 0, time.UTC)
)

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		DefaultCapacity:  4,
		LateCancelCutoff: 24 * time.Hour,
		Location:         time.UTC,
	}
}

func newTestUseCase(schedule *fakeScheduleRepo, bookings *fakeBookingRepo, cancellations *fakeCancellationRepo, now time.Time) *UseCase {
	uc := NewUseCase(schedule, bookings, cancellations, fakeTxManager{}, testEngineConfig(), noopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func mondaySlot() domain.SlotDefinition {
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

func cancelRequest(memberID int64) *Request {
	return &Request{
		MemberID:    memberID,
		Date:        occurrenceDate,
		StartTime:   types.TimeString("08:00"),
		EndTime:     types.TimeString("09:00"),
		CancelledBy: domain.CancelledByMember,
	}
}

// --- тесты ---

func TestExecute_EarlyCancelRecurring(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true}},
	}
	cancellations := &fakeCancellationRepo{}
	uc := newTestUseCase(schedule, bookings, cancellations, earlyNow)

	resp, err := uc.Execute(context.Background(), cancelRequest(10))

	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	assert.Equal(t, string(domain.SourceRecurring), resp.Source)
	assert.Equal(t, domain.EventBookingCancelled, resp.Event.Type)
	assert.Equal(t, "false", resp.Event.Payload["is_late"])
	require.Len(t, cancellations.created, 1)
	// Постоянное бронирование не трогаем, отмена живет только в журнале
	assert.Empty(t, bookings.statusUpdates)
}

func TestExecute_LateCancel(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true}},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, lateNow)

	resp, err := uc.Execute(context.Background(), cancelRequest(10))

	require.NoError(t, err)
	assert.True(t, resp.IsLate)
	assert.Equal(t, "true", resp.Event.Payload["is_late"])
}

func TestExecute_CancelVariableUpdatesStatus(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot()}}
	bookings := &fakeBookingRepo{
		variable: []domain.VariableBooking{
			{
				ID:        7,
				MemberID:  10,
				Date:      occurrenceDate,
				StartTime: types.TimeString("08:00"),
				EndTime:   types.TimeString("09:00"),
				Status:    domain.VariableConfirmed,
			},
		},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, earlyNow)

	resp, err := uc.Execute(context.Background(), cancelRequest(10))

	require.NoError(t, err)
	assert.Equal(t, string(domain.SourceVariable), resp.Source)
	assert.Equal(t, domain.VariableCancelled, bookings.statusUpdates[7])
}

func TestExecute_NoOccurrence(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot()}}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{}, earlyNow)

	_, err := uc.Execute(context.Background(), cancelRequest(10))

	assert.ErrorIs(t, err, ErrOccurrenceNotFound)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot()}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true}},
	}
	cancellations := &fakeCancellationRepo{
		rows: []domain.Cancellation{
			{
				MemberID:    10,
				Date:        occurrenceDate,
				StartTime:   types.TimeString("08:00"),
				EndTime:     types.TimeString("09:00"),
				CancelledBy: domain.CancelledByMember,
			},
		},
	}
	uc := newTestUseCase(schedule, bookings, cancellations, earlyNow)

	_, err := uc.Execute(context.Background(), cancelRequest(10))

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, earlyNow)

	longReason := string(make([]byte, domain.MaxReasonLength+1))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero member", func(r *Request) { r.MemberID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"unknown cancelledBy", func(r *Request) { r.CancelledBy = "someone" }},
		{"reason too long", func(r *Request) { r.Reason = &longReason }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cancelRequest(10)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
