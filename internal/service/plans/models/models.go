package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// PlanSlot выбранный слот недельного плана
type PlanSlot struct {
	Weekday    int
	SlotNumber int
}

// AssignPlanRequest запрос на назначение недельного плана.
// Число слотов и есть тариф (дней в неделю).
type AssignPlanRequest struct {
	MemberID      int64
	Slots         []PlanSlot
	EffectiveFrom time.Time
}

// AssignPlanResponse назначенный план
type AssignPlanResponse struct {
	MemberID      int64
	PlanTier      int
	UnitPrice     decimal.Decimal
	EffectiveFrom time.Time
	Bookings      []RecurringBookingResponse
	Deactivated   int64 // снятых строк предыдущего плана
}

// RecurringBookingResponse строка еженедельного бронирования
type RecurringBookingResponse struct {
	ID            int64
	Weekday       int
	SlotNumber    int
	PlanTier      int
	UnitPrice     decimal.Decimal
	EffectiveFrom time.Time
}

// FromDomainRecurring конвертирует доменную модель в ответ
func FromDomainRecurring(d *domain.RecurringBooking) RecurringBookingResponse {
	return RecurringBookingResponse{
		ID:            d.ID,
		Weekday:       d.Weekday,
		SlotNumber:    d.SlotNumber,
		PlanTier:      d.PlanTier,
		UnitPrice:     d.UnitPrice,
		EffectiveFrom: d.EffectiveFrom,
	}
}

// MemberBookingsResponse все бронирования члена клуба
type MemberBookingsResponse struct {
	MemberID  int64
	Recurring []RecurringBookingResponse
	Variable  []VariableBookingResponse
}

// VariableBookingResponse разовое бронирование
type VariableBookingResponse struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
}

// FromDomainVariable конвертирует доменную модель в ответ
func FromDomainVariable(d *domain.VariableBooking) VariableBookingResponse {
	return VariableBookingResponse{
		ID:        d.ID,
		Date:      d.Date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Status:    string(d.Status),
	}
}
