package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// RecurringBooking a member's standing weekly reservation: (weekday, slot).
// Plan changes deactivate the old rows and insert new ones; history rows are
// never merged or rewritten.
type RecurringBooking struct {
	ID            int64
	MemberID      int64
	Weekday       int // ISO: Monday=1 .. Sunday=7
	SlotNumber    int
	PlanTier      int // дней в неделю по плану (1..5)
	UnitPrice     decimal.Decimal
	Active        bool
	EffectiveFrom time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariableStatus статус разового бронирования
type VariableStatus string

const (
	VariableConfirmed VariableStatus = "confirmed"
	VariableCancelled VariableStatus = "cancelled"
)

// VariableBooking a one-off reservation for a specific calendar date, created
// outside the weekly template (ad-hoc member booking or admin assignment).
type VariableBooking struct {
	ID        int64
	MemberID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    VariableStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed проверяет, что бронирование активно
func (v *VariableBooking) IsConfirmed() bool {
	return v.Status == VariableConfirmed
}
