package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceInputs все данные для вычисления счета за один месяц.
// Загружаются вызывающим слоем; вычисление — чистая функция.
type InvoiceInputs struct {
	MemberID int64
	Year     int
	Month    time.Month

	// SlotDefs все активные определения слотов недельного шаблона
	SlotDefs []SlotDefinition

	// Exceptions активные исключения месяца, ключ — дата в DateFormat
	Exceptions map[string]*ExceptionDay

	// Absences активные отсутствия, пересекающие месяц
	Absences []AbsenceOverride

	// Recurring активные еженедельные бронирования члена клуба
	Recurring []RecurringBooking

	// Variable разовые бронирования члена клуба за месяц
	Variable []VariableBooking

	// Cancellations записи журнала отмен члена клуба за месяц
	Cancellations []Cancellation

	// UnitPrice цена занятия по тарифу плана
	UnitPrice decimal.Decimal

	// DiscountPct скидка в процентах (0..100)
	DiscountPct decimal.Decimal

	GeneratedAt time.Time
}

// ComputeInvoice derives the member's monthly charge from actual schedule
// state: every date of the month is resolved with the same rules as
// ResolveDay, so exception days and absence overrides drop out of
// classes_scheduled instead of being credited.
//
//	classes_billed = classes_scheduled − early_cancellations, floored at 0
//	net_amount     = classes_billed × unit_price × (1 − discount_pct/100)
//
// Late cancellations stay billed: the seat could not be reallocated in time.
// Admin absence suppression is not a member credit — those dates are simply
// never scheduled.
func ComputeInvoice(cfg EngineConfig, in InvoiceInputs) MonthlyInvoice {
	ledger := make(map[CancellationKey]*Cancellation, len(in.Cancellations))
	for i := range in.Cancellations {
		c := &in.Cancellations[i]
		ledger[c.Key()] = c
	}

	scheduled := 0
	early := 0

	for _, date := range MonthDates(in.Year, in.Month, cfg.Location) {
		day := ResolveDay(cfg, DayInputs{
			Date:          date,
			SlotDefs:      in.SlotDefs,
			Exception:     in.Exceptions[date.Format(DateFormat)],
			Absences:      in.Absences,
			Recurring:     in.Recurring,
			Variable:      in.Variable,
			Cancellations: cancellationsOn(in.Cancellations, date),
		})

		for _, slot := range day {
			for _, occ := range slot.Occupants {
				if occ.MemberID != in.MemberID {
					continue
				}
				scheduled++
				if !occ.Cancelled {
					continue
				}
				if c, ok := ledger[KeyOf(in.MemberID, date, slot.StartTime, slot.EndTime)]; ok && c.IsEarly() {
					early++
				}
			}
		}
	}

	billed := scheduled - early
	if billed < 0 {
		billed = 0
	}

	gross := in.UnitPrice.Mul(decimal.NewFromInt(int64(billed)))

	discount := in.DiscountPct
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	net := gross.Mul(factor).Round(2)

	return MonthlyInvoice{
		MemberID:         in.MemberID,
		Year:             in.Year,
		Month:            int(in.Month),
		ClassesScheduled: scheduled,
		ClassesBilled:    billed,
		UnitPrice:        in.UnitPrice,
		GrossAmount:      gross.Round(2),
		DiscountPct:      discount,
		NetAmount:        net,
		GeneratedAt:      in.GeneratedAt,
	}
}

// cancellationsOn фильтрует записи журнала по дате
func cancellationsOn(all []Cancellation, date time.Time) []Cancellation {
	out := make([]Cancellation, 0, 2)
	for _, c := range all {
		if SameDate(c.Date, date) {
			out = append(out, c)
		}
	}
	return out
}
