package manage_absences

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
)

// CreateAbsenceRequest HTTP request model
type CreateAbsenceRequest struct {
	Kind               string `json:"kind"`      // single_date | date_range
	StartDate          string `json:"startDate"` // "2026-09-01"
	EndDate            string `json:"endDate,omitempty"`
	BlockedSlotNumbers []int  `json:"blockedSlotNumbers,omitempty"` // пусто — блокируются все слоты
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAbsenceRequest) ToServiceRequest() (*models.CreateAbsenceRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if r.EndDate != "" {
		parsed, err := time.Parse(domain.DateFormat, r.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	return &models.CreateAbsenceRequest{
		Kind:               domain.AbsenceKind(r.Kind),
		StartDate:          startDate,
		EndDate:            endDate,
		BlockedSlotNumbers: r.BlockedSlotNumbers,
	}, nil
}

// AbsenceResponse HTTP response model
type AbsenceResponse struct {
	ID                 int64     `json:"id"`
	Kind               string    `json:"kind"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate,omitempty"`
	BlockedSlotNumbers []int     `json:"blockedSlotNumbers,omitempty"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ListAbsencesResponse ответ со списком отсутствий за период
type ListAbsencesResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AbsenceResponse) *AbsenceResponse {
	out := &AbsenceResponse{
		ID:                 resp.ID,
		Kind:               resp.Kind,
		StartDate:          resp.StartDate.Format(domain.DateFormat),
		BlockedSlotNumbers: resp.BlockedSlotNumbers,
		Active:             resp.Active,
		CreatedAt:          resp.CreatedAt,
	}
	if resp.EndDate != nil {
		out.EndDate = resp.EndDate.Format(domain.DateFormat)
	}
	return out
}
