package assign_plan

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

// AssignPlanRequest HTTP request model
type AssignPlanRequest struct {
	Slots         []PlanSlotRequest `json:"slots"`
	EffectiveFrom string            `json:"effectiveFrom,omitempty"` // "2026-10-01", по умолчанию сегодня
}

// PlanSlotRequest выбранный слот недельного плана
type PlanSlotRequest struct {
	Weekday    int `json:"weekday"`
	SlotNumber int `json:"slotNumber"`
}

// AssignPlanResponse HTTP response model
type AssignPlanResponse struct {
	MemberID      int64                   `json:"memberId"`
	PlanTier      int                     `json:"planTier"`
	UnitPrice     string                  `json:"unitPrice"`
	EffectiveFrom string                  `json:"effectiveFrom"`
	Bookings      []PlanBookingResponse   `json:"bookings"`
	Deactivated   int64                   `json:"deactivated"`
}

// PlanBookingResponse строка нового плана
type PlanBookingResponse struct {
	ID         int64 `json:"id"`
	Weekday    int   `json:"weekday"`
	SlotNumber int   `json:"slotNumber"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AssignPlanRequest) ToServiceRequest(memberID int64) (*models.AssignPlanRequest, error) {
	var effectiveFrom time.Time
	if r.EffectiveFrom != "" {
		parsed, err := time.Parse(domain.DateFormat, r.EffectiveFrom)
		if err != nil {
			return nil, err
		}
		effectiveFrom = parsed
	}

	slots := make([]models.PlanSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, models.PlanSlot{
			Weekday:    s.Weekday,
			SlotNumber: s.SlotNumber,
		})
	}

	return &models.AssignPlanRequest{
		MemberID:      memberID,
		Slots:         slots,
		EffectiveFrom: effectiveFrom,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AssignPlanResponse) *AssignPlanResponse {
	out := &AssignPlanResponse{
		MemberID:      resp.MemberID,
		PlanTier:      resp.PlanTier,
		UnitPrice:     resp.UnitPrice.StringFixed(2),
		EffectiveFrom: resp.EffectiveFrom.Format(domain.DateFormat),
		Bookings:      make([]PlanBookingResponse, 0, len(resp.Bookings)),
		Deactivated:   resp.Deactivated,
	}
	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, PlanBookingResponse{
			ID:         b.ID,
			Weekday:    b.Weekday,
			SlotNumber: b.SlotNumber,
		})
	}
	return out
}
