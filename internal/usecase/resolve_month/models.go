package resolve_month

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// Request модель запроса на разрешение месяца
type Request struct {
	Year  int
	Month int // 1..12
}

// Response разрешенное расписание календарного месяца
type Response struct {
	Year  int
	Month int
	Days  []Day
}

// Day один день месяца
type Day struct {
	Date  time.Time
	Open  bool
	Slots []Slot
}

// Slot разрешенный слот с занятостью
type Slot struct {
	SlotNumber     int
	StartTime      types.TimeString
	EndTime        types.TimeString
	Capacity       int
	Blocked        bool
	AvailableSpots int
	Occupants      []Occupant
}

// Occupant запись члена клуба в слоте
type Occupant struct {
	MemberID  int64
	Source    string
	Cancelled bool
}
