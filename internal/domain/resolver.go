package domain

import (
	"sort"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// DayInputs все строки, участвующие в разрешении одного дня.
// Загружаются вызывающим слоем; сам резолвер — чистая функция.
type DayInputs struct {
	Date time.Time

	// SlotDefs активные определения слотов для дня недели даты
	SlotDefs []SlotDefinition

	// Exception активное исключение календаря на дату, nil если нет
	Exception *ExceptionDay

	// Absences активные административные отсутствия, действующие на дату
	Absences []AbsenceOverride

	// Recurring активные еженедельные бронирования для дня недели даты
	Recurring []RecurringBooking

	// Variable разовые бронирования на дату (Confirmed и Cancelled —
	// отмененные нужны для дедупликации с журналом)
	Variable []VariableBooking

	// Cancellations записи журнала отмен на дату
	Cancellations []Cancellation
}

// ResolveDay computes the effective per-slot occupancy for one date by
// overlaying the weekly template with the exception calendar, the absence
// registry, both booking stores and the cancellation ledger.
//
// Precedence:
//  1. an active fully-closed exception closes the whole day;
//  2. exception custom slots replace the weekly template for the date;
//  3. weekends without an EnabledWeekend exception are closed;
//  4. absences suppress individual slots (zero capacity, no occupants)
//     without cancelling the underlying bookings.
//
// A member never appears twice in one slot: on a recurring/variable collision
// the variable booking wins (it is the administrative correction).
func ResolveDay(cfg EngineConfig, in DayInputs) []SlotOccupancy {
	slots, closed := effectiveSlotSet(cfg, in)
	if closed {
		return []SlotOccupancy{}
	}

	cancelled := make(map[CancellationKey]bool, len(in.Cancellations))
	for _, c := range in.Cancellations {
		cancelled[c.Key()] = true
	}

	result := make([]SlotOccupancy, 0, len(slots))
	for _, slot := range slots {
		if slotBlockedByAbsence(in.Absences, in.Date, slot.SlotNumber) {
			result = append(result, SlotOccupancy{
				SlotNumber: slot.SlotNumber,
				StartTime:  slot.StartTime,
				EndTime:    slot.EndTime,
				Capacity:   0,
				Blocked:    true,
			})
			continue
		}

		slot.Occupants = gatherOccupants(slot, in, cancelled)
		result = append(result, slot)
	}

	return result
}

// effectiveSlotSet определяет набор слотов на дату (шаги 1-3 алгоритма).
// Второе значение true — день полностью закрыт.
func effectiveSlotSet(cfg EngineConfig, in DayInputs) ([]SlotOccupancy, bool) {
	if ex := in.Exception; ex != nil && ex.Active {
		if ex.IsFullyClosed() {
			return nil, true
		}
		if len(ex.CustomSlots) > 0 {
			// Кастомные слоты замещают недельный шаблон, нумеруются по порядку
			slots := make([]SlotOccupancy, 0, len(ex.CustomSlots))
			for i, cs := range ex.CustomSlots {
				capacity := cs.Capacity
				if capacity <= 0 {
					capacity = cfg.DefaultCapacity
				}
				slots = append(slots, SlotOccupancy{
					SlotNumber: i + 1,
					StartTime:  cs.StartTime,
					EndTime:    cs.EndTime,
					Capacity:   capacity,
				})
			}
			return slots, false
		}
		// EnabledWeekend без кастомных слотов: открываем по недельному
		// шаблону, если для выходного он вообще определен
	}

	if IsWeekend(in.Date) && (in.Exception == nil || !in.Exception.Active) {
		return nil, true
	}

	defs := make([]SlotDefinition, 0, len(in.SlotDefs))
	for _, d := range in.SlotDefs {
		if d.Active && d.Weekday == ISOWeekday(in.Date) {
			defs = append(defs, d)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].SlotNumber < defs[j].SlotNumber })

	slots := make([]SlotOccupancy, 0, len(defs))
	for _, d := range defs {
		slots = append(slots, SlotOccupancy{
			SlotNumber: d.SlotNumber,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			Capacity:   d.EffectiveCapacity(cfg.DefaultCapacity),
		})
	}
	return slots, false
}

// gatherOccupants собирает записи слота из обоих хранилищ (шаги 4-5):
// еженедельные бронирования по (weekday, slot_number), разовые по точному
// совпадению времени, с дедупликацией member-а и наложением журнала отмен.
func gatherOccupants(slot SlotOccupancy, in DayInputs, cancelledKeys map[CancellationKey]bool) []Occupant {
	// Разовые бронирования побеждают при коллизии, поэтому собираются первыми
	seen := make(map[int64]bool)
	occupants := make([]Occupant, 0, len(in.Recurring)+len(in.Variable))

	for _, v := range in.Variable {
		if !SameDate(v.Date, in.Date) || v.StartTime != slot.StartTime || v.EndTime != slot.EndTime {
			continue
		}
		inLedger := cancelledKeys[KeyOf(v.MemberID, in.Date, slot.StartTime, slot.EndTime)]
		if v.Status == VariableCancelled && !inLedger {
			// Отмененная строка без записи в журнале — чисто историческая,
			// в разрешенный день не попадает
			continue
		}
		if seen[v.MemberID] {
			continue
		}
		seen[v.MemberID] = true
		occupants = append(occupants, Occupant{
			MemberID:  v.MemberID,
			Source:    SourceVariable,
			Cancelled: inLedger,
		})
	}

	for _, r := range in.Recurring {
		if !r.Active || r.Weekday != ISOWeekday(in.Date) || r.SlotNumber != slot.SlotNumber {
			continue
		}
		if r.EffectiveFrom.After(in.Date) {
			// Бронирование еще не действует на эту дату
			continue
		}
		if seen[r.MemberID] {
			// Коллизия recurring+variable: разовое бронирование уже учтено
			continue
		}
		seen[r.MemberID] = true
		occupants = append(occupants, Occupant{
			MemberID:  r.MemberID,
			Source:    SourceRecurring,
			Cancelled: cancelledKeys[KeyOf(r.MemberID, in.Date, slot.StartTime, slot.EndTime)],
		})
	}

	return occupants
}

// slotBlockedByAbsence проверяет шаг 6: подавлен ли слот отсутствием
func slotBlockedByAbsence(absences []AbsenceOverride, date time.Time, slotNumber int) bool {
	for _, a := range absences {
		if a.AppliesTo(date) && a.BlocksSlot(slotNumber) {
			return true
		}
	}
	return false
}

// FindSlot находит слот по точному времени начала и конца
func FindSlot(slots []SlotOccupancy, start, end types.TimeString) *SlotOccupancy {
	for i := range slots {
		if slots[i].StartTime == start && slots[i].EndTime == end {
			return &slots[i]
		}
	}
	return nil
}
