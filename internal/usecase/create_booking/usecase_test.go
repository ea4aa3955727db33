package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	scheduleRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/schedule"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
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
	slotDefs  []domain.SlotDefinition
	exception *domain.ExceptionDay
	absences  []domain.AbsenceOverride
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
	if r.exception == nil {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	return r.exception, nil
}

func (r *fakeScheduleRepo) ListAbsencesInRange(context.Context, time.Time, time.Time) ([]domain.AbsenceOverride, error) {
	return r.absences, nil
}

type fakeBookingRepo struct {
	recurring []domain.RecurringBooking
	variable  []domain.VariableBooking
	created   []domain.VariableBooking
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

func (r *fakeBookingRepo) CreateVariable(_ context.Context, b *domain.VariableBooking) (*domain.VariableBooking, error) {
	created := *b
	created.ID = int64(len(r.created) + 1)
	created.CreatedAt = time.Now()
	r.created = append(r.created, created)
	return &created, nil
}

type fakeCancellationRepo struct {
	rows []domain.Cancellation
}

func (r *fakeCancellationRepo) ListByDate(context.Context, time.Time) ([]domain.Cancellation, error) {
	return r.rows, nil
}

type fakeMemberClient struct {
	member *memberservice.Member
	err    error
}

func (c *fakeMemberClient) GetMember(context.Context, int64) (*memberservice.Member, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.member, nil
}

// --- сборка ---

var (
	// Понедельник; "сейчас" — неделя до него
	bookingDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	testNow     = time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)
)

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		DefaultCapacity:  4,
		LateCancelCutoff: 24 * time.Hour,
		Location:         time.UTC,
	}
}

func mondaySlot(capacity int) domain.SlotDefinition {
	return domain.SlotDefinition{
		ID:         1,
		Weekday:    1,
		SlotNumber: 1,
		StartTime:  types.TimeString("08:00"),
		EndTime:    types.TimeString("09:00"),
		Capacity:   capacity,
		Active:     true,
	}
}

func newTestUseCase(schedule *fakeScheduleRepo, bookings *fakeBookingRepo, cancellations *fakeCancellationRepo, member *fakeMemberClient) *UseCase {
	uc := NewUseCase(schedule, bookings, cancellations, member, fakeTxManager{}, testEngineConfig(), noopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func activeMember(id int64) *fakeMemberClient {
	return &fakeMemberClient{member: &memberservice.Member{ID: id, FullName: "Test Member", Active: true}}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(4)}}
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, activeMember(10))

	resp, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.MemberID)
	assert.Equal(t, 1, resp.SlotNumber)
	assert.Equal(t, 3, resp.AvailableSpots)
	assert.Equal(t, string(domain.VariableConfirmed), resp.Status)
	assert.Equal(t, domain.EventBookingCreated, resp.Event.Type)
	require.Len(t, bookings.created, 1)
	assert.Equal(t, bookingDate, bookings.created[0].Date)
}

func TestExecute_MemberNotFound(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(4)}}
	member := &fakeMemberClient{err: memberservice.ErrMemberNotFound}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{}, member)

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_MemberInactive(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(4)}}
	member := &fakeMemberClient{member: &memberservice.Member{ID: 10, Active: false}}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{}, member)

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrMemberInactive)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, activeMember(10))

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      testNow.AddDate(0, 0, -1),
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotClosedByException(t *testing.T) {
	schedule := &fakeScheduleRepo{
		slotDefs:  []domain.SlotDefinition{mondaySlot(4)},
		exception: &domain.ExceptionDay{Date: bookingDate, Kind: domain.ExceptionClosedWeekday, Active: true},
	}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{}, activeMember(10))

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_NoSuchSlot(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(4)}}
	uc := newTestUseCase(schedule, &fakeBookingRepo{}, &fakeCancellationRepo{}, activeMember(10))

	// Запрошенное время не совпадает ни с одним слотом дня
	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("12:00"),
		EndTime:   types.TimeString("13:00"),
	})

	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(4)}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 10, Weekday: 1, SlotNumber: 1, Active: true},
		},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, activeMember(10))

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(1)}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 20, Weekday: 1, SlotNumber: 1, Active: true},
		},
	}
	uc := newTestUseCase(schedule, bookings, &fakeCancellationRepo{}, activeMember(10))

	_, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_CancelledOccupantFreesSpot(t *testing.T) {
	// Слот на одно место занят постоянным бронированием, но оно отменено
	// на эту дату — место свободно
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{mondaySlot(1)}}
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{MemberID: 20, Weekday: 1, SlotNumber: 1, Active: true},
		},
	}
	cancellations := &fakeCancellationRepo{
		rows: []domain.Cancellation{
			{
				MemberID:    20,
				Date:        bookingDate,
				StartTime:   types.TimeString("08:00"),
				EndTime:     types.TimeString("09:00"),
				CancelledBy: domain.CancelledByMember,
			},
		},
	}
	uc := newTestUseCase(schedule, bookings, cancellations, activeMember(10))

	resp, err := uc.Execute(context.Background(), &Request{
		MemberID:  10,
		Date:      bookingDate,
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("09:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.AvailableSpots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeCancellationRepo{}, activeMember(10))

	tests := []struct {
		name string
		req  Request
	}{
		{"zero member", Request{Date: bookingDate, StartTime: "08:00", EndTime: "09:00"}},
		{"zero date", Request{MemberID: 10, StartTime: "08:00", EndTime: "09:00"}},
		{"missing start", Request{MemberID: 10, Date: bookingDate, EndTime: "09:00"}},
		{"bad format", Request{MemberID: 10, Date: bookingDate, StartTime: "8am", EndTime: "09:00"}},
		{"inverted window", Request{MemberID: 10, Date: bookingDate, StartTime: "09:00", EndTime: "08:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
