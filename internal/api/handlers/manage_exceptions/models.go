package manage_exceptions

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	Date        string              `json:"date"` // "2026-09-01"
	Kind        string              `json:"kind"` // closed_weekday | enabled_weekend
	CustomSlots []CustomSlotRequest `json:"customSlots,omitempty"`
}

// CustomSlotRequest кастомный слот исключения
type CustomSlotRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest() (*models.CreateExceptionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]models.CustomSlot, 0, len(r.CustomSlots))
	for _, cs := range r.CustomSlots {
		slots = append(slots, models.CustomSlot{
			StartTime: types.TimeString(cs.StartTime),
			EndTime:   types.TimeString(cs.EndTime),
			Capacity:  cs.Capacity,
		})
	}

	return &models.CreateExceptionRequest{
		Date:        date,
		Kind:        domain.ExceptionKind(r.Kind),
		CustomSlots: slots,
	}, nil
}

// ExceptionResponse HTTP response model
type ExceptionResponse struct {
	ID          int64               `json:"id"`
	Date        string              `json:"date"`
	Kind        string              `json:"kind"`
	CustomSlots []CustomSlotRequest `json:"customSlots,omitempty"`
	Active      bool                `json:"active"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ExceptionResponse) *ExceptionResponse {
	slots := make([]CustomSlotRequest, 0, len(resp.CustomSlots))
	for _, cs := range resp.CustomSlots {
		slots = append(slots, CustomSlotRequest{
			StartTime: cs.StartTime.String(),
			EndTime:   cs.EndTime.String(),
			Capacity:  cs.Capacity,
		})
	}
	return &ExceptionResponse{
		ID:          resp.ID,
		Date:        resp.Date.Format(domain.DateFormat),
		Kind:        resp.Kind,
		CustomSlots: slots,
		Active:      resp.Active,
		CreatedAt:   resp.CreatedAt,
	}
}
