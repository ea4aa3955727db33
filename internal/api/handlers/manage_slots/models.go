package manage_slots

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// UpsertSlotRequest HTTP request model
type UpsertSlotRequest struct {
	Weekday    int    `json:"weekday"`
	SlotNumber int    `json:"slotNumber"`
	StartTime  string `json:"startTime"` // "HH:MM"
	EndTime    string `json:"endTime"`   // "HH:MM"
	Capacity   int    `json:"capacity,omitempty"`
	Active     *bool  `json:"active,omitempty"` // по умолчанию true
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertSlotRequest) ToServiceRequest() *models.UpsertSlotRequest {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.UpsertSlotRequest{
		Weekday:    r.Weekday,
		SlotNumber: r.SlotNumber,
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		Capacity:   r.Capacity,
		Active:     active,
	}
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID         int64     `json:"id"`
	Weekday    int       `json:"weekday"`
	SlotNumber int       `json:"slotNumber"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Capacity   int       `json:"capacity"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListSlotsResponse ответ со всем недельным шаблоном
type ListSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:         resp.ID,
		Weekday:    resp.Weekday,
		SlotNumber: resp.SlotNumber,
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Capacity:   resp.Capacity,
		Active:     resp.Active,
		CreatedAt:  resp.CreatedAt,
		UpdatedAt:  resp.UpdatedAt,
	}
}
