package resolve_day

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// Request модель запроса на разрешение дня
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response разрешенное расписание одного дня
type Response struct {
	Date  time.Time
	Open  bool   // false — день полностью закрыт
	Slots []Slot // пусто для закрытого дня
}

// Slot разрешенный слот с занятостью
type Slot struct {
	SlotNumber     int
	StartTime      types.TimeString
	EndTime        types.TimeString
	Capacity       int
	Blocked        bool // подавлен административным отсутствием
	AvailableSpots int
	Occupants      []Occupant
}

// Occupant запись члена клуба в слоте
type Occupant struct {
	MemberID  int64
	Source    string // recurring | variable
	Cancelled bool   // остается видимым после отмены
}

// toResponse конвертирует результат резолвера в модель ответа
func toResponse(date time.Time, slots []domain.SlotOccupancy) *Response {
	resp := &Response{
		Date:  date,
		Open:  len(slots) > 0,
		Slots: make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		slot := Slot{
			SlotNumber:     s.SlotNumber,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			Capacity:       s.Capacity,
			Blocked:        s.Blocked,
			AvailableSpots: s.AvailableSpots(),
			Occupants:      make([]Occupant, 0, len(s.Occupants)),
		}
		for _, o := range s.Occupants {
			slot.Occupants = append(slot.Occupants, Occupant{
				MemberID:  o.MemberID,
				Source:    string(o.Source),
				Cancelled: o.Cancelled,
			})
		}
		resp.Slots = append(resp.Slots, slot)
	}
	return resp
}
