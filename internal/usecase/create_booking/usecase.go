package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	bookingRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/booking"
	memberClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
)

// UseCase use case разового бронирования
type UseCase struct {
	scheduleRepo     ScheduleRepository
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	memberClient     MemberServiceClient
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
	memberClient MemberServiceClient,
	txManager TransactionManager,
	engineConfig domain.EngineConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		memberClient:     memberClient,
		txManager:        txManager,
		engineConfig:     engineConfig,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case разового бронирования.
// Проверка вместимости и вставка идут в одной сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли последнее место дважды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: member=%d, date=%s, time=%s-%s",
		req.MemberID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.TruncateToDate(req.Date)

	// 2. Дата не в прошлом
	if date.Before(domain.TruncateToDate(now)) {
		uc.logger.Warn("CreateBooking: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Проверяем членство
	member, err := uc.memberClient.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("CreateBooking: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if !member.Active {
		uc.logger.Warn("CreateBooking: member id=%d is inactive", req.MemberID)
		return nil, ErrMemberInactive
	}

	var result *domain.VariableBooking
	var slotNumber, availableSpots int

	// 4. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем день с блокировкой разовых бронирований (FOR UPDATE)
		inputs, err := resolve_day.LoadDayInputs(txCtx, uc.scheduleRepo, uc.bookingRepo, uc.cancellationRepo, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load day inputs: %v", err)
			return fmt.Errorf("%w: failed to load day inputs: %v", ErrInternal, err)
		}

		// 4.2. Разрешаем день и находим слот
		slots := domain.ResolveDay(uc.engineConfig, *inputs)
		slot := domain.FindSlot(slots, req.StartTime, req.EndTime)
		if slot == nil || slot.Blocked {
			uc.logger.Warn("CreateBooking: no open slot at %s %s-%s",
				date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return ErrSlotClosed
		}

		// 4.3. Член клуба не должен быть уже записан в слот
		if slot.HasActiveMember(req.MemberID) {
			uc.logger.Warn("CreateBooking: member id=%d already booked in slot %d", req.MemberID, slot.SlotNumber)
			return ErrDuplicateBooking
		}

		// 4.4. Проверяем вместимость
		if slot.ActiveCount() >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot %d full, %d/%d spots taken",
				slot.SlotNumber, slot.ActiveCount(), slot.Capacity)
			return ErrCapacityExceeded
		}

		// 4.5. Создаем разовое бронирование
		booking := &domain.VariableBooking{
			MemberID:  req.MemberID,
			Date:      date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.VariableConfirmed,
		}
		created, err := uc.bookingRepo.CreateVariable(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				return ErrDuplicateBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		slotNumber = slot.SlotNumber
		availableSpots = slot.Capacity - slot.ActiveCount() - 1
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, %d spots left", result.ID, availableSpots)

	event := domain.NewEvent(domain.EventBookingCreated, result.MemberID, now, map[string]string{
		"date":       date.Format(domain.DateFormat),
		"start_time": result.StartTime.String(),
		"end_time":   result.EndTime.String(),
	})

	return &Response{
		ID:             result.ID,
		MemberID:       result.MemberID,
		Date:           result.Date,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		SlotNumber:     slotNumber,
		AvailableSpots: availableSpots,
		CreatedAt:      result.CreatedAt,
		Event:          event,
	}, nil
}
