package domain

import "time"

// AbsenceKind вид административного отсутствия
type AbsenceKind string

const (
	AbsenceSingleDate AbsenceKind = "single_date"
	AbsenceDateRange  AbsenceKind = "date_range"
)

// AbsenceOverride administrator-declared blackout: a single date (optionally
// limited to specific slot numbers) or an inclusive date range. It only
// suppresses availability; existing bookings are never implicitly cancelled.
type AbsenceOverride struct {
	ID                 int64
	Kind               AbsenceKind
	StartDate          time.Time
	EndDate            *time.Time // nil для SingleDate
	BlockedSlotNumbers []int      // пустой список = все слоты
	Active             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo проверяет, действует ли отсутствие на указанную дату
func (a *AbsenceOverride) AppliesTo(date time.Time) bool {
	if !a.Active {
		return false
	}

	day := TruncateToDate(date)
	start := TruncateToDate(a.StartDate)

	switch a.Kind {
	case AbsenceSingleDate:
		return day.Equal(start)
	case AbsenceDateRange:
		if a.EndDate == nil {
			return false
		}
		end := TruncateToDate(*a.EndDate)
		return !day.Before(start) && !day.After(end)
	default:
		return false
	}
}

// BlocksSlot проверяет, подавляет ли отсутствие конкретный номер слота.
// Пустой список номеров блокирует все слоты дня.
func (a *AbsenceOverride) BlocksSlot(slotNumber int) bool {
	if len(a.BlockedSlotNumbers) == 0 {
		return true
	}
	for _, n := range a.BlockedSlotNumbers {
		if n == slotNumber {
			return true
		}
	}
	return false
}
