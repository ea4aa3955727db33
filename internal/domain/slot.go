package domain

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// SlotDefinition represents one bookable time window in the weekly template.
// (Weekday, SlotNumber) is unique; the template is mutated only by
// administrative configuration.
type SlotDefinition struct {
	ID         int64
	Weekday    int // ISO: Monday=1 .. Sunday=7
	SlotNumber int
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int // 0 = use the configured global default
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveCapacity returns the slot capacity, falling back to the
// configured default when the definition carries no override.
func (s *SlotDefinition) EffectiveCapacity(defaultCapacity int) int {
	if s.Capacity > 0 {
		return s.Capacity
	}
	return defaultCapacity
}

// OccupantSource tells which store an occupant entry came from
type OccupantSource string

const (
	SourceRecurring OccupantSource = "recurring"
	SourceVariable  OccupantSource = "variable"
)

// Occupant одна запись о члене клуба в разрешенном слоте.
// Отмененные записи остаются видимыми (Cancelled=true) — биллинг и история
// должны видеть, что занятие было запланировано и отменено.
type Occupant struct {
	MemberID  int64
	Source    OccupantSource
	Cancelled bool
}

// SlotOccupancy итоговое состояние одного слота на конкретную дату
type SlotOccupancy struct {
	SlotNumber int
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
	Blocked    bool // подавлен AbsenceOverride: нулевая вместимость, без записей
	Occupants  []Occupant
}

// ActiveCount returns the number of non-cancelled occupants
func (s *SlotOccupancy) ActiveCount() int {
	n := 0
	for _, o := range s.Occupants {
		if !o.Cancelled {
			n++
		}
	}
	return n
}

// AvailableSpots returns the number of free seats, floored at zero
func (s *SlotOccupancy) AvailableSpots() int {
	free := s.Capacity - s.ActiveCount()
	if free < 0 {
		return 0
	}
	return free
}

// HasActiveMember проверяет, занимает ли член клуба этот слот (без учета отмен)
func (s *SlotOccupancy) HasActiveMember(memberID int64) bool {
	for _, o := range s.Occupants {
		if o.MemberID == memberID && !o.Cancelled {
			return true
		}
	}
	return false
}
