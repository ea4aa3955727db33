package resolve_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	scheduleRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/schedule"
)

// UseCase use case разрешения расписания одного дня
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

// Execute выполняет use case разрешения дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := domain.TruncateToDate(req.Date)

	inputs, err := LoadDayInputs(ctx, uc.scheduleRepo, uc.bookingRepo, uc.cancellationRepo, date)
	if err != nil {
		uc.logger.Error("ResolveDay: failed to load inputs for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	slots := domain.ResolveDay(uc.engineConfig, *inputs)
	uc.logger.Info("ResolveDay: date=%s resolved %d slots", date.Format(domain.DateFormat), len(slots))

	return toResponse(date, slots), nil
}

// LoadDayInputs загружает все строки, участвующие в разрешении одной даты.
// Используется и другими use case-ами (бронирование, отмена), чтобы проверка
// и разрешение шли по одним и тем же данным.
func LoadDayInputs(
	ctx context.Context,
	schedule ScheduleRepository,
	bookings BookingRepository,
	cancellations CancellationRepository,
	date time.Time,
) (*domain.DayInputs, error) {
	weekday := domain.ISOWeekday(date)

	slotDefs, err := schedule.ListSlotDefinitionsByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot definitions: %v", err)
	}

	exception, err := schedule.GetExceptionByDate(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		return nil, fmt.Errorf("failed to load exception day: %v", err)
	}

	absences, err := schedule.ListAbsencesInRange(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load absences: %v", err)
	}

	recurring, err := bookings.ListRecurringByWeekday(ctx, weekday, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring bookings: %v", err)
	}

	variable, err := bookings.ListVariableByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load variable bookings: %v", err)
	}

	ledger, err := cancellations.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load cancellations: %v", err)
	}

	return &domain.DayInputs{
		Date:          date,
		SlotDefs:      slotDefs,
		Exception:     exception,
		Absences:      absences,
		Recurring:     recurring,
		Variable:      variable,
		Cancellations: ledger,
	}, nil
}
