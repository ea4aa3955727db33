package create_booking

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	createBooking "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/create_booking"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string `json:"date"`      // "2026-09-14"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64  `json:"id"`
	MemberID       int64  `json:"memberId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`
	SlotNumber     int    `json:"slotNumber"`
	AvailableSpots int    `json:"availableSpots"`
	CreatedAt      string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(memberID int64) (*createBooking.Request, error) {
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

	return &createBooking.Request{
		MemberID:  memberID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		MemberID:       resp.MemberID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		SlotNumber:     resp.SlotNumber,
		AvailableSpots: resp.AvailableSpots,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
