package plans

import (
	"fmt"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

// validateAssignPlan валидирует запрос на назначение плана
func validateAssignPlan(req *models.AssignPlanRequest) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	tier := len(req.Slots)
	if tier < domain.MinPlanDaysPerWeek || tier > domain.MaxPlanDaysPerWeek {
		return fmt.Errorf("%w: plan must have %d..%d slots",
			ErrInvalidInput, domain.MinPlanDaysPerWeek, domain.MaxPlanDaysPerWeek)
	}

	// Один день недели — один слот плана
	seen := make(map[int]bool, tier)
	for _, slot := range req.Slots {
		if slot.Weekday < domain.MinWeekday || slot.Weekday > domain.MaxWeekday {
			return fmt.Errorf("%w: weekday must be %d..%d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
		}
		if slot.SlotNumber <= 0 {
			return fmt.Errorf("%w: slotNumber must be positive", ErrInvalidInput)
		}
		if seen[slot.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d in plan", ErrInvalidInput, slot.Weekday)
		}
		seen[slot.Weekday] = true
	}
	return nil
}
