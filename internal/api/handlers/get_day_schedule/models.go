package get_day_schedule

import (
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	resolveDay "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date  string         `json:"date"`
	Open  bool           `json:"open"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse разрешенный слот дня
type SlotResponse struct {
	SlotNumber     int                `json:"slotNumber"`
	StartTime      string             `json:"startTime"`
	EndTime        string             `json:"endTime"`
	Capacity       int                `json:"capacity"`
	Blocked        bool               `json:"blocked"`
	AvailableSpots int                `json:"availableSpots"`
	Occupants      []OccupantResponse `json:"occupants"`
}

// OccupantResponse запись члена клуба в слоте
type OccupantResponse struct {
	MemberID  int64  `json:"memberId"`
	Source    string `json:"source"`
	Cancelled bool   `json:"cancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveDay.Response) *DayScheduleResponse {
	out := &DayScheduleResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Open:  resp.Open,
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		slot := SlotResponse{
			SlotNumber:     s.SlotNumber,
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			Capacity:       s.Capacity,
			Blocked:        s.Blocked,
			AvailableSpots: s.AvailableSpots,
			Occupants:      make([]OccupantResponse, 0, len(s.Occupants)),
		}
		for _, o := range s.Occupants {
			slot.Occupants = append(slot.Occupants, OccupantResponse{
				MemberID:  o.MemberID,
				Source:    o.Source,
				Cancelled: o.Cancelled,
			})
		}
		out.Slots = append(out.Slots, slot)
	}
	return out
}
