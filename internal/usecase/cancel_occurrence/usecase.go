package cancel_occurrence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	cancellationRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/cancellation"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
)

// UseCase use case отмены одного занятия.
// Классификация (ранняя/поздняя) фиксируется в момент отмены и больше
// не пересчитывается: биллинг читает готовый признак из журнала.
type UseCase struct {
	scheduleRepo     ScheduleRepository
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	txManager        TransactionManager
	engineConfig     domain.EngineConfig
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	cancellationRepo CancellationRepository,
	txManager TransactionManager,
	engineConfig domain.EngineConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		txManager:        txManager,
		engineConfig:     engineConfig,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены занятия.
// Запись в журнал и перевод разового бронирования в cancelled идут в одной
// транзакции: двойная отмена и частичный эффект исключены.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelOccurrence: member=%d, date=%s, time=%s-%s, by=%s",
		req.MemberID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.CancelledBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelOccurrence: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.TruncateToDate(req.Date)

	// 2. Классифицируем отмену по времени до начала занятия
	sessionStart, err := req.StartTime.OnDate(date, uc.engineConfig.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session start: %v", ErrInvalidInput, err)
	}
	isLate := domain.ClassifyLateness(sessionStart, now, uc.engineConfig.LateCancelCutoff)

	var result *domain.Cancellation
	var source domain.OccupantSource

	// 3. Журнал и статус бронирования в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем и разрешаем день
		inputs, err := resolve_day.LoadDayInputs(txCtx, uc.scheduleRepo, uc.bookingRepo, uc.cancellationRepo, date)
		if err != nil {
			uc.logger.Error("CancelOccurrence: failed to load day inputs: %v", err)
			return fmt.Errorf("%w: failed to load day inputs: %v", ErrInternal, err)
		}

		slots := domain.ResolveDay(uc.engineConfig, *inputs)
		slot := domain.FindSlot(slots, req.StartTime, req.EndTime)
		if slot == nil {
			uc.logger.Warn("CancelOccurrence: no slot at %s %s-%s",
				date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return ErrOccurrenceNotFound
		}

		// 3.2. У члена клуба должно быть занятие в этом слоте
		occupant := findOccupant(slot.Occupants, req.MemberID)
		if occupant == nil {
			uc.logger.Warn("CancelOccurrence: member id=%d has no occurrence in slot %d", req.MemberID, slot.SlotNumber)
			return ErrOccurrenceNotFound
		}
		if occupant.Cancelled {
			uc.logger.Warn("CancelOccurrence: occurrence already cancelled for member id=%d", req.MemberID)
			return ErrAlreadyCancelled
		}
		source = occupant.Source

		// 3.3. Записываем отмену в журнал
		cancellation := &domain.Cancellation{
			MemberID:    req.MemberID,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			CancelledBy: req.CancelledBy,
			IsLate:      isLate,
			Reason:      req.Reason,
		}
		created, err := uc.cancellationRepo.Create(txCtx, cancellation)
		if err != nil {
			if errors.Is(err, cancellationRepo.ErrAlreadyCancelled) {
				return ErrAlreadyCancelled
			}
			uc.logger.Error("CancelOccurrence: failed to create ledger row: %v", err)
			return fmt.Errorf("%w: failed to create ledger row: %v", ErrInternal, err)
		}

		// 3.4. Разовое бронирование дополнительно переводим в cancelled
		if occupant.Source == domain.SourceVariable {
			variable, err := uc.bookingRepo.GetVariableByOccurrence(txCtx, req.MemberID, date, req.StartTime, req.EndTime)
			if err != nil {
				uc.logger.Error("CancelOccurrence: failed to get variable booking: %v", err)
				return fmt.Errorf("%w: failed to get variable booking: %v", ErrInternal, err)
			}
			if err := uc.bookingRepo.UpdateVariableStatus(txCtx, variable.ID, domain.VariableCancelled); err != nil {
				uc.logger.Error("CancelOccurrence: failed to update variable status: %v", err)
				return fmt.Errorf("%w: failed to update variable status: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelOccurrence: recorded cancellation id=%d, is_late=%t", result.ID, result.IsLate)

	event := domain.NewEvent(domain.EventBookingCancelled, result.MemberID, now, map[string]string{
		"date":       date.Format(domain.DateFormat),
		"start_time": result.StartTime.String(),
		"end_time":   result.EndTime.String(),
		"is_late":    strconv.FormatBool(result.IsLate),
	})

	return &Response{
		ID:          result.ID,
		MemberID:    result.MemberID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		CancelledBy: string(result.CancelledBy),
		IsLate:      result.IsLate,
		Source:      string(source),
		CreatedAt:   result.CreatedAt,
		Event:       event,
	}, nil
}

// findOccupant находит запись члена клуба среди записей слота
func findOccupant(occupants []domain.Occupant, memberID int64) *domain.Occupant {
	for i := range occupants {
		if occupants[i].MemberID == memberID {
			return &occupants[i]
		}
	}
	return nil
}
