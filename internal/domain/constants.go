package domain

import "time"

// Default configuration values
const (
	DefaultSlotCapacity          = 4
	DefaultLateCancelCutoffHours = 24
	DefaultDiscountPct           = 0
)

// Business validation constants
const (
	MinSlotCapacity    = 1
	MaxSlotCapacity    = 50
	MinWeekday         = 1 // Monday (ISO 8601)
	MaxWeekday         = 7 // Sunday (ISO 8601)
	MinPlanDaysPerWeek = 1
	MaxPlanDaysPerWeek = 5
	MaxReasonLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ISOWeekday возвращает день недели в ISO-нумерации: Monday=1 .. Sunday=7
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWeekend проверяет, что дата приходится на субботу или воскресенье
func IsWeekend(date time.Time) bool {
	return ISOWeekday(date) >= 6
}

// SameDate проверяет совпадение календарной даты (без учета времени)
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TruncateToDate обнуляет компонент времени
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthDates возвращает все календарные даты месяца по порядку
func MonthDates(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	dates := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
