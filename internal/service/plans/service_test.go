package plans

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
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
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

type fakeBookingRepo struct {
	recurring []domain.RecurringBooking
	variable  []domain.VariableBooking

	created             []domain.RecurringBooking
	deactivatedMemberID int64
}

func (r *fakeBookingRepo) CreateRecurring(_ context.Context, b *domain.RecurringBooking) (*domain.RecurringBooking, error) {
	created := *b
	created.ID = int64(len(r.created) + 1)
	r.created = append(r.created, created)
	return &created, nil
}

func (r *fakeBookingRepo) ListRecurringByMember(context.Context, int64) ([]domain.RecurringBooking, error) {
	return r.recurring, nil
}

func (r *fakeBookingRepo) DeactivateRecurringByMember(_ context.Context, memberID int64) (int64, error) {
	r.deactivatedMemberID = memberID
	return int64(len(r.recurring)), nil
}

func (r *fakeBookingRepo) ListVariableByMember(context.Context, int64, time.Time) ([]domain.VariableBooking, error) {
	return r.variable, nil
}

type fakeScheduleRepo struct {
	slotDefs []domain.SlotDefinition
}

func (r *fakeScheduleRepo) ListSlotDefinitions(context.Context) ([]domain.SlotDefinition, error) {
	return r.slotDefs, nil
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

type fakePlanClient struct {
	price *planservice.TierPrice
	err   error

	requestedTier int
}

func (c *fakePlanClient) GetTierPrice(_ context.Context, daysPerWeek int) (*planservice.TierPrice, error) {
	c.requestedTier = daysPerWeek
	if c.err != nil {
		return nil, c.err
	}
	return c.price, nil
}

// --- сборка ---

var serviceNow = time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

func slotDef(weekday, number int) domain.SlotDefinition {
	return domain.SlotDefinition{
		Weekday:    weekday,
		SlotNumber: number,
		StartTime:  types.TimeString("08:00"),
		EndTime:    types.TimeString("09:00"),
		Capacity:   4,
		Active:     true,
	}
}

func newTestService(bookings *fakeBookingRepo, schedule *fakeScheduleRepo, member *fakeMemberClient, plan *fakePlanClient) *Service {
	svc := NewService(bookings, schedule, member, plan, fakeTxManager{}, noopLogger{})
	svc.timeProvider = fixedTime{now: serviceNow}
	return svc
}

func activeMember(id int64) *fakeMemberClient {
	return &fakeMemberClient{member: &memberservice.Member{ID: id, Active: true}}
}

// --- тесты ---

func TestAssignPlan_ReplacesPreviousPlan(t *testing.T) {
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{ID: 1, MemberID: 10, Weekday: 3, SlotNumber: 1, Active: true},
		},
	}
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{slotDef(1, 1), slotDef(2, 2)}}
	plan := &fakePlanClient{price: &planservice.TierPrice{DaysPerWeek: 2, UnitPrice: decimal.RequireFromString("90"), Currency: "ARS"}}
	svc := newTestService(bookings, schedule, activeMember(10), plan)

	resp, err := svc.AssignPlan(context.Background(), &models.AssignPlanRequest{
		MemberID: 10,
		Slots: []models.PlanSlot{
			{Weekday: 1, SlotNumber: 1},
			{Weekday: 2, SlotNumber: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.PlanTier)
	assert.Equal(t, 2, plan.requestedTier)
	assert.Equal(t, int64(1), resp.Deactivated)
	assert.Equal(t, int64(10), bookings.deactivatedMemberID)
	require.Len(t, resp.Bookings, 2)
	// EffectiveFrom не передан — план действует с сегодняшнего дня
	assert.Equal(t, domain.TruncateToDate(serviceNow), resp.EffectiveFrom)
	for _, b := range bookings.created {
		assert.Equal(t, 2, b.PlanTier)
		assert.True(t, b.UnitPrice.Equal(decimal.RequireFromString("90")))
		assert.True(t, b.Active)
	}
}

func TestAssignPlan_UnknownSlot(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{slotDef(1, 1)}}
	plan := &fakePlanClient{price: &planservice.TierPrice{UnitPrice: decimal.RequireFromString("90")}}
	svc := newTestService(&fakeBookingRepo{}, schedule, activeMember(10), plan)

	_, err := svc.AssignPlan(context.Background(), &models.AssignPlanRequest{
		MemberID: 10,
		Slots:    []models.PlanSlot{{Weekday: 5, SlotNumber: 3}},
	})

	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestAssignPlan_MemberChecks(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{slotDef(1, 1)}}
	req := &models.AssignPlanRequest{
		MemberID: 10,
		Slots:    []models.PlanSlot{{Weekday: 1, SlotNumber: 1}},
	}

	t.Run("not found", func(t *testing.T) {
		member := &fakeMemberClient{err: memberservice.ErrMemberNotFound}
		svc := newTestService(&fakeBookingRepo{}, schedule, member, &fakePlanClient{})
		_, err := svc.AssignPlan(context.Background(), req)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		member := &fakeMemberClient{member: &memberservice.Member{ID: 10, Active: false}}
		svc := newTestService(&fakeBookingRepo{}, schedule, member, &fakePlanClient{})
		_, err := svc.AssignPlan(context.Background(), req)
		assert.ErrorIs(t, err, ErrMemberInactive)
	})
}

func TestAssignPlan_PriceNotConfigured(t *testing.T) {
	schedule := &fakeScheduleRepo{slotDefs: []domain.SlotDefinition{slotDef(1, 1)}}
	plan := &fakePlanClient{err: planservice.ErrPriceNotFound}
	svc := newTestService(&fakeBookingRepo{}, schedule, activeMember(10), plan)

	_, err := svc.AssignPlan(context.Background(), &models.AssignPlanRequest{
		MemberID: 10,
		Slots:    []models.PlanSlot{{Weekday: 1, SlotNumber: 1}},
	})

	assert.ErrorIs(t, err, ErrPriceNotConfigured)
}

func TestAssignPlan_Validation(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{}, activeMember(10), &fakePlanClient{})

	tooMany := make([]models.PlanSlot, domain.MaxPlanDaysPerWeek+1)
	for i := range tooMany {
		tooMany[i] = models.PlanSlot{Weekday: i%7 + 1, SlotNumber: 1}
	}

	tests := []struct {
		name  string
		slots []models.PlanSlot
	}{
		{"empty plan", nil},
		{"too many slots", tooMany},
		{"duplicate weekday", []models.PlanSlot{{Weekday: 1, SlotNumber: 1}, {Weekday: 1, SlotNumber: 2}}},
		{"bad weekday", []models.PlanSlot{{Weekday: 8, SlotNumber: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssignPlan(context.Background(), &models.AssignPlanRequest{MemberID: 10, Slots: tt.slots})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetMemberBookings(t *testing.T) {
	bookings := &fakeBookingRepo{
		recurring: []domain.RecurringBooking{
			{ID: 1, MemberID: 10, Weekday: 1, SlotNumber: 1, PlanTier: 2, Active: true},
			{ID: 2, MemberID: 10, Weekday: 3, SlotNumber: 1, PlanTier: 2, Active: true},
		},
		variable: []domain.VariableBooking{
			{ID: 5, MemberID: 10, Date: serviceNow.AddDate(0, 0, 3),
				StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00"),
				Status: domain.VariableConfirmed},
		},
	}
	svc := newTestService(bookings, &fakeScheduleRepo{}, activeMember(10), &fakePlanClient{})

	resp, err := svc.GetMemberBookings(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.MemberID)
	assert.Len(t, resp.Recurring, 2)
	require.Len(t, resp.Variable, 1)
	assert.Equal(t, string(domain.VariableConfirmed), resp.Variable[0].Status)
}

func TestGetMemberBookings_InvalidID(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeScheduleRepo{}, activeMember(10), &fakePlanClient{})

	_, err := svc.GetMemberBookings(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
