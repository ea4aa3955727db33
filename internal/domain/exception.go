package domain

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// ExceptionKind вид календарного исключения
type ExceptionKind string

const (
	// ExceptionClosedWeekday будний день закрыт (праздник) либо работает
	// по сокращенному расписанию CustomSlots
	ExceptionClosedWeekday ExceptionKind = "closed_weekday"

	// ExceptionEnabledWeekend выходной день открыт по расписанию CustomSlots
	ExceptionEnabledWeekend ExceptionKind = "enabled_weekend"
)

// CustomSlot временное окно внутри исключения; нумеруется по порядку с 1
type CustomSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// ExceptionDay per-date override of the weekly template: a closed weekday
// (holiday), a holiday with custom hours, or an ad-hoc enabled weekend.
// Overlays SlotDefinition for its date.
type ExceptionDay struct {
	ID          int64
	Date        time.Time
	Kind        ExceptionKind
	CustomSlots []CustomSlot
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFullyClosed true для праздничного дня без кастомных слотов
func (e *ExceptionDay) IsFullyClosed() bool {
	return e.Kind == ExceptionClosedWeekday && len(e.CustomSlots) == 0
}

// KindMatchesWeekday проверяет инвариант: ClosedWeekday только для Пн-Пт,
// EnabledWeekend только для Сб-Вс
func (e *ExceptionDay) KindMatchesWeekday() bool {
	switch e.Kind {
	case ExceptionClosedWeekday:
		return !IsWeekend(e.Date)
	case ExceptionEnabledWeekend:
		return IsWeekend(e.Date)
	default:
		return false
	}
}
