package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/ptr"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

var (
	// Понедельник и суббота одной недели
	monday   = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
)

func testConfig() EngineConfig {
	return EngineConfig{
		DefaultCapacity:  4,
		LateCancelCutoff: 24 * time.Hour,
		Location:         time.UTC,
	}
}

func slotDef(weekday, number int, start, end string, capacity int) SlotDefinition {
	return SlotDefinition{
		Weekday:    weekday,
		SlotNumber: number,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Capacity:   capacity,
		Active:     true,
	}
}

func recurring(memberID int64, weekday, slotNumber int) RecurringBooking {
	return RecurringBooking{
		MemberID:   memberID,
		Weekday:    weekday,
		SlotNumber: slotNumber,
		Active:     true,
	}
}

func variable(memberID int64, date time.Time, start, end string) VariableBooking {
	return VariableBooking{
		MemberID:  memberID,
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    VariableConfirmed,
	}
}

func TestResolveDay_WeekdayTemplate(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date: monday,
		SlotDefs: []SlotDefinition{
			slotDef(1, 1, "08:00", "09:00", 4),
			slotDef(1, 2, "09:00", "10:00", 6),
			slotDef(2, 1, "08:00", "09:00", 4), // вторник, не должен попасть
		},
		Recurring: []RecurringBooking{
			recurring(10, 1, 1),
			recurring(11, 1, 1),
		},
	})

	require.Len(t, day, 2)
	assert.Equal(t, 1, day[0].SlotNumber)
	assert.Equal(t, 4, day[0].Capacity)
	assert.Len(t, day[0].Occupants, 2)
	assert.Equal(t, 2, day[0].ActiveCount())
	assert.Equal(t, 6, day[1].Capacity)
	assert.Empty(t, day[1].Occupants)
}

func TestResolveDay_RecurringNotYetEffective(t *testing.T) {
	// Бронирование с effective_from позже даты в день не попадает
	booked := recurring(10, 1, 1)
	booked.EffectiveFrom = monday.AddDate(0, 0, 12) // 15 ноября

	day := ResolveDay(testConfig(), DayInputs{
		Date:      monday,
		SlotDefs:  []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Recurring: []RecurringBooking{booked},
	})

	require.Len(t, day, 1)
	assert.Empty(t, day[0].Occupants)
}

func TestResolveDay_DefaultCapacityFallback(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date:     monday,
		SlotDefs: []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 0)},
	})

	require.Len(t, day, 1)
	assert.Equal(t, 4, day[0].Capacity)
}

func TestResolveDay_WeekendClosedByDefault(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date:     saturday,
		SlotDefs: []SlotDefinition{slotDef(6, 1, "10:00", "11:00", 4)},
	})

	assert.Empty(t, day)
}

func TestResolveDay_ClosedWeekdayWinsOverBookings(t *testing.T) {
	// Активное исключение ClosedWeekday без кастомных слотов закрывает день
	// независимо от существующих еженедельных бронирований
	day := ResolveDay(testConfig(), DayInputs{
		Date:     monday,
		SlotDefs: []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Exception: &ExceptionDay{
			Date:   monday,
			Kind:   ExceptionClosedWeekday,
			Active: true,
		},
		Recurring: []RecurringBooking{recurring(10, 1, 1)},
	})

	assert.Empty(t, day)
}

func TestResolveDay_InactiveExceptionIgnored(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date:     monday,
		SlotDefs: []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Exception: &ExceptionDay{
			Date:   monday,
			Kind:   ExceptionClosedWeekday,
			Active: false,
		},
	})

	require.Len(t, day, 1)
}

func TestResolveDay_EnabledWeekendCustomSlots(t *testing.T) {
	// Сценарий: суббота с двумя кастомными слотами вместимостью 6,
	// недельного шаблона для выходных не существует
	day := ResolveDay(testConfig(), DayInputs{
		Date: saturday,
		Exception: &ExceptionDay{
			Date: saturday,
			Kind: ExceptionEnabledWeekend,
			CustomSlots: []CustomSlot{
				{StartTime: "10:00", EndTime: "11:00", Capacity: 6},
				{StartTime: "11:00", EndTime: "12:00", Capacity: 6},
			},
			Active: true,
		},
	})

	require.Len(t, day, 2)
	assert.Equal(t, 1, day[0].SlotNumber)
	assert.Equal(t, 2, day[1].SlotNumber)
	assert.Equal(t, 6, day[0].Capacity)
	assert.Equal(t, types.TimeString("11:00"), day[1].StartTime)
}

func TestResolveDay_ClosedWeekdayCustomSlotsReplaceTemplate(t *testing.T) {
	// Праздничный день с сокращенными часами: кастомные слоты замещают шаблон
	day := ResolveDay(testConfig(), DayInputs{
		Date: monday,
		SlotDefs: []SlotDefinition{
			slotDef(1, 1, "08:00", "09:00", 4),
			slotDef(1, 2, "09:00", "10:00", 4),
		},
		Exception: &ExceptionDay{
			Date:        monday,
			Kind:        ExceptionClosedWeekday,
			CustomSlots: []CustomSlot{{StartTime: "10:00", EndTime: "12:00", Capacity: 8}},
			Active:      true,
		},
	})

	require.Len(t, day, 1)
	assert.Equal(t, types.TimeString("10:00"), day[0].StartTime)
	assert.Equal(t, 8, day[0].Capacity)
}

func TestResolveDay_AbsenceBlocksSingleSlot(t *testing.T) {
	// Сценарий: отсутствие во вторник блокирует только слот 3
	day := ResolveDay(testConfig(), DayInputs{
		Date: tuesday,
		SlotDefs: []SlotDefinition{
			slotDef(2, 1, "08:00", "09:00", 4),
			slotDef(2, 3, "10:00", "11:00", 4),
		},
		Absences: []AbsenceOverride{{
			Kind:               AbsenceSingleDate,
			StartDate:          tuesday,
			BlockedSlotNumbers: []int{3},
			Active:             true,
		}},
		Recurring: []RecurringBooking{
			recurring(10, 2, 1),
			recurring(11, 2, 3),
		},
	})

	require.Len(t, day, 2)
	assert.False(t, day[0].Blocked)
	assert.Equal(t, 1, day[0].ActiveCount())

	assert.True(t, day[1].Blocked)
	assert.Equal(t, 0, day[1].Capacity)
	assert.Empty(t, day[1].Occupants)
}

func TestResolveDay_AbsenceRangeBlocksAllSlots(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date: tuesday,
		SlotDefs: []SlotDefinition{
			slotDef(2, 1, "08:00", "09:00", 4),
			slotDef(2, 2, "09:00", "10:00", 4),
		},
		Absences: []AbsenceOverride{{
			Kind:      AbsenceDateRange,
			StartDate: monday,
			EndDate:   ptr.Ptr(tuesday.AddDate(0, 0, 3)),
			Active:    true,
		}},
	})

	require.Len(t, day, 2)
	for _, slot := range day {
		assert.True(t, slot.Blocked)
		assert.Equal(t, 0, slot.Capacity)
	}
}

func TestResolveDay_CancelledOccupantStaysVisible(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date:      monday,
		SlotDefs:  []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Recurring: []RecurringBooking{recurring(10, 1, 1), recurring(11, 1, 1)},
		Cancellations: []Cancellation{{
			MemberID:  10,
			Date:      monday,
			StartTime: "08:00",
			EndTime:   "09:00",
			IsLate:    false,
		}},
	})

	require.Len(t, day, 1)
	require.Len(t, day[0].Occupants, 2)
	assert.Equal(t, 1, day[0].ActiveCount())
	assert.Equal(t, 3, day[0].AvailableSpots())

	var cancelled *Occupant
	for i := range day[0].Occupants {
		if day[0].Occupants[i].MemberID == 10 {
			cancelled = &day[0].Occupants[i]
		}
	}
	require.NotNil(t, cancelled)
	assert.True(t, cancelled.Cancelled)
}

func TestResolveDay_VariableWinsRecurringCollision(t *testing.T) {
	// Член клуба имеет и еженедельное, и разовое бронирование на один слот:
	// учитывается только разовое (административная корректировка)
	day := ResolveDay(testConfig(), DayInputs{
		Date:      monday,
		SlotDefs:  []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Recurring: []RecurringBooking{recurring(10, 1, 1)},
		Variable:  []VariableBooking{variable(10, monday, "08:00", "09:00")},
	})

	require.Len(t, day, 1)
	require.Len(t, day[0].Occupants, 1)
	assert.Equal(t, SourceVariable, day[0].Occupants[0].Source)
	assert.Equal(t, 1, day[0].ActiveCount())
}

func TestResolveDay_VariableOnDifferentTimesIgnored(t *testing.T) {
	day := ResolveDay(testConfig(), DayInputs{
		Date:     monday,
		SlotDefs: []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Variable: []VariableBooking{variable(10, monday, "09:00", "10:00")},
	})

	require.Len(t, day, 1)
	assert.Empty(t, day[0].Occupants)
}

func TestResolveDay_CapacityInvariantHolds(t *testing.T) {
	// Вместимость никогда не превышается активными записями в разрешенном дне
	occupants := []RecurringBooking{
		recurring(1, 1, 1), recurring(2, 1, 1), recurring(3, 1, 1), recurring(4, 1, 1),
	}
	day := ResolveDay(testConfig(), DayInputs{
		Date:      monday,
		SlotDefs:  []SlotDefinition{slotDef(1, 1, "08:00", "09:00", 4)},
		Recurring: occupants,
	})

	require.Len(t, day, 1)
	assert.Equal(t, 4, day[0].ActiveCount())
	assert.Equal(t, 0, day[0].AvailableSpots())
	assert.LessOrEqual(t, day[0].ActiveCount(), day[0].Capacity)
}

func TestFindSlot(t *testing.T) {
	slots := []SlotOccupancy{
		{SlotNumber: 1, StartTime: "08:00", EndTime: "09:00"},
		{SlotNumber: 2, StartTime: "09:00", EndTime: "10:00"},
	}

	found := FindSlot(slots, "09:00", "10:00")
	require.NotNil(t, found)
	assert.Equal(t, 2, found.SlotNumber)

	assert.Nil(t, FindSlot(slots, "10:00", "11:00"))
}

func TestClassifyLateness_Boundary(t *testing.T) {
	sessionStart := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	cutoff := 24 * time.Hour

	tests := []struct {
		name string
		now  time.Time
		late bool
	}{
		{"more than 24h ahead", sessionStart.Add(-24*time.Hour - time.Second), false},
		{"exactly 24h ahead", sessionStart.Add(-24 * time.Hour), false},
		{"just under 24h ahead", sessionStart.Add(-23*time.Hour - 59*time.Minute - 59*time.Second), true},
		{"30 minutes ahead", sessionStart.Add(-30 * time.Minute), true},
		{"session already started", sessionStart.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.late, ClassifyLateness(sessionStart, tt.now, cutoff))
		})
	}
}

func TestAbsenceOverride_AppliesTo(t *testing.T) {
	rangeAbsence := AbsenceOverride{
		Kind:      AbsenceDateRange,
		StartDate: monday,
		EndDate:   ptr.Ptr(monday.AddDate(0, 0, 4)),
		Active:    true,
	}

	assert.True(t, rangeAbsence.AppliesTo(monday))
	assert.True(t, rangeAbsence.AppliesTo(monday.AddDate(0, 0, 4)))
	assert.False(t, rangeAbsence.AppliesTo(monday.AddDate(0, 0, 5)))
	assert.False(t, rangeAbsence.AppliesTo(monday.AddDate(0, 0, -1)))

	inactive := rangeAbsence
	inactive.Active = false
	assert.False(t, inactive.AppliesTo(monday))
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 6, ISOWeekday(saturday))
	assert.Equal(t, 7, ISOWeekday(saturday.AddDate(0, 0, 1)))
}
