package get_month_schedule

import (
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	resolveMonth "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_month"
)

// MonthScheduleResponse HTTP response model
type MonthScheduleResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// DayResponse один день месяца
type DayResponse struct {
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
func FromUseCaseResponse(resp *resolveMonth.Response) *MonthScheduleResponse {
	out := &MonthScheduleResponse{
		Year:  resp.Year,
		Month: resp.Month,
		Days:  make([]DayResponse, 0, len(resp.Days)),
	}
	for _, d := range resp.Days {
		day := DayResponse{
			Date:  d.Date.Format(domain.DateFormat),
			Open:  d.Open,
			Slots: make([]SlotResponse, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
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
			day.Slots = append(day.Slots, slot)
		}
		out.Days = append(out.Days, day)
	}
	return out
}
