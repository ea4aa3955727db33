package cancel_occurrence

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	cancelOccurrence "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/cancel_occurrence"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// CancelOccurrenceRequest HTTP request model
type CancelOccurrenceRequest struct {
	Date      string  `json:"date"`      // "2026-09-14"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:00"
	Reason    *string `json:"reason,omitempty"`
}

// CancellationResponse HTTP response model
type CancellationResponse struct {
	ID          int64  `json:"id"`
	MemberID    int64  `json:"memberId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	CancelledBy string `json:"cancelledBy"`
	IsLate      bool   `json:"isLate"`
	Source      string `json:"source"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelOccurrenceRequest) ToUseCaseRequest(memberID int64, by domain.CancelledBy) (*cancelOccurrence.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &cancelOccurrence.Request{
		MemberID:    memberID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		CancelledBy: by,
		Reason:      r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelOccurrence.Response) *CancellationResponse {
	return &CancellationResponse{
		ID:          resp.ID,
		MemberID:    resp.MemberID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		CancelledBy: resp.CancelledBy,
		IsLate:      resp.IsLate,
		Source:      resp.Source,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
