package schedule

import (
	"fmt"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// validateSlot валидирует определение слота недельного шаблона
func validateSlot(req *models.UpsertSlotRequest) error {
	if req.Weekday < domain.MinWeekday || req.Weekday > domain.MaxWeekday {
		return fmt.Errorf("%w: weekday must be %d..%d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
	}
	if req.SlotNumber <= 0 {
		return fmt.Errorf("%w: slotNumber must be positive", ErrInvalidInput)
	}
	if req.Capacity < 0 || req.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be 0..%d", ErrInvalidInput, domain.MaxSlotCapacity)
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return err
	}
	return nil
}

// validateException валидирует исключение календаря
func validateException(ex *domain.ExceptionDay) error {
	if ex.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !ex.KindMatchesWeekday() {
		return fmt.Errorf("%w: kind=%s, date=%s", ErrKindWeekdayMismatch, ex.Kind, ex.Date.Format(domain.DateFormat))
	}
	// EnabledWeekend без кастомных слотов бессмысленен: выходной нечем открыть
	if ex.Kind == domain.ExceptionEnabledWeekend && len(ex.CustomSlots) == 0 {
		return fmt.Errorf("%w: enabled_weekend requires custom slots", ErrInvalidInput)
	}
	for _, cs := range ex.CustomSlots {
		if cs.Capacity < 0 || cs.Capacity > domain.MaxSlotCapacity {
			return fmt.Errorf("%w: custom slot capacity must be 0..%d", ErrInvalidInput, domain.MaxSlotCapacity)
		}
		if err := validateWindow(cs.StartTime, cs.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// validateAbsence валидирует административное отсутствие
func validateAbsence(a *domain.AbsenceOverride) error {
	if a.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	switch a.Kind {
	case domain.AbsenceSingleDate:
		if a.EndDate != nil {
			return fmt.Errorf("%w: single_date absence must not carry endDate", ErrInvalidInput)
		}
	case domain.AbsenceDateRange:
		if a.EndDate == nil {
			return fmt.Errorf("%w: date_range absence requires endDate", ErrInvalidInput)
		}
		if a.EndDate.Before(a.StartDate) {
			return ErrInvalidDateRange
		}
	default:
		return fmt.Errorf("%w: unknown absence kind %q", ErrInvalidInput, a.Kind)
	}

	for _, n := range a.BlockedSlotNumbers {
		if n <= 0 {
			return fmt.Errorf("%w: blocked slot numbers must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// validateWindow проверяет временное окно слота
func validateWindow(start, end types.TimeString) error {
	if start.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
