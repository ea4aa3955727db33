package resolve_month

import (
	"context"
	"fmt"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
)

// UseCase use case разрешения расписания календарного месяца.
// Данные месяца загружаются одним набором запросов, каждый день
// разрешается в памяти тем же алгоритмом, что и одиночный день.
type UseCase struct {
	scheduleRepo     ScheduleRepository
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	engineConfig     domain.EngineConfig
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	cancellationRepo CancellationRepository,
	engineConfig domain.EngineConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		engineConfig:     engineConfig,
		logger:           logger,
	}
}

// Execute выполняет use case разрешения месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Year < 2000 || req.Year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be 1..12", ErrInvalidInput)
	}

	dates := domain.MonthDates(req.Year, time.Month(req.Month), uc.engineConfig.Location)
	from, to := dates[0], dates[len(dates)-1]

	slotDefs, err := uc.scheduleRepo.ListSlotDefinitions(ctx)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load slot definitions: %v", err)
		return nil, fmt.Errorf("%w: failed to load slot definitions: %v", ErrInternal, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptionsInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to load exceptions: %v", ErrInternal, err)
	}
	exceptionsByDate := make(map[string]*domain.ExceptionDay, len(exceptions))
	for i := range exceptions {
		exceptionsByDate[exceptions[i].Date.Format(domain.DateFormat)] = &exceptions[i]
	}

	absences, err := uc.scheduleRepo.ListAbsencesInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load absences: %v", err)
		return nil, fmt.Errorf("%w: failed to load absences: %v", ErrInternal, err)
	}

	recurring, err := uc.bookingRepo.ListActiveRecurring(ctx, to)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load recurring bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load recurring bookings: %v", ErrInternal, err)
	}

	variable, err := uc.bookingRepo.ListVariableByDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load variable bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load variable bookings: %v", ErrInternal, err)
	}

	ledger, err := uc.cancellationRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("ResolveMonth: failed to load cancellations: %v", err)
		return nil, fmt.Errorf("%w: failed to load cancellations: %v", ErrInternal, err)
	}

	resp := &Response{
		Year:  req.Year,
		Month: req.Month,
		Days:  make([]Day, 0, len(dates)),
	}

	for _, date := range dates {
		inputs := domain.DayInputs{
			Date:          date,
			SlotDefs:      slotDefsForWeekday(slotDefs, domain.ISOWeekday(date)),
			Exception:     exceptionsByDate[date.Format(domain.DateFormat)],
			Absences:      absences,
			Recurring:     recurringForWeekday(recurring, domain.ISOWeekday(date), date),
			Variable:      variableForDate(variable, date),
			Cancellations: cancellationsForDate(ledger, date),
		}

		slots := domain.ResolveDay(uc.engineConfig, inputs)
		resp.Days = append(resp.Days, toDay(date, slots))
	}

	uc.logger.Info("ResolveMonth: year=%d month=%d resolved %d days", req.Year, req.Month, len(resp.Days))
	return resp, nil
}

func slotDefsForWeekday(defs []domain.SlotDefinition, weekday int) []domain.SlotDefinition {
	out := make([]domain.SlotDefinition, 0, len(defs))
	for _, d := range defs {
		if d.Weekday == weekday {
			out = append(out, d)
		}
	}
	return out
}

func recurringForWeekday(bookings []domain.RecurringBooking, weekday int, date time.Time) []domain.RecurringBooking {
	out := make([]domain.RecurringBooking, 0, len(bookings))
	for _, b := range bookings {
		if b.Weekday == weekday && !b.EffectiveFrom.After(date) {
			out = append(out, b)
		}
	}
	return out
}

func variableForDate(bookings []domain.VariableBooking, date time.Time) []domain.VariableBooking {
	out := make([]domain.VariableBooking, 0)
	for _, b := range bookings {
		if domain.SameDate(b.Date, date) {
			out = append(out, b)
		}
	}
	return out
}

func cancellationsForDate(ledger []domain.Cancellation, date time.Time) []domain.Cancellation {
	out := make([]domain.Cancellation, 0)
	for _, c := range ledger {
		if domain.SameDate(c.Date, date) {
			out = append(out, c)
		}
	}
	return out
}

func toDay(date time.Time, slots []domain.SlotOccupancy) Day {
	day := Day{
		Date:  date,
		Open:  len(slots) > 0,
		Slots: make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		slot := Slot{
			SlotNumber:     s.SlotNumber,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			Capacity:       s.Capacity,
			Blocked:        s.Blocked,
			AvailableSpots: s.AvailableSpots(),
			Occupants:      make([]Occupant, 0, len(s.Occupants)),
		}
		for _, o := range s.Occupants {
			slot.Occupants = append(slot.Occupants, Occupant{
				MemberID:  o.MemberID,
				Source:    string(o.Source),
				Cancelled: o.Cancelled,
			})
		}
		day.Slots = append(day.Slots, slot)
	}
	return day
}
