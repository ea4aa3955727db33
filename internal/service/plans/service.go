package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	memberClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	planClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

// Service сервис управления недельными планами членов клуба.
// Смена плана не редактирует историю: старые строки деактивируются,
// новые вставляются с собственной датой вступления в силу.
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	memberClient MemberServiceClient
	planClient   PlanServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса планов
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	memberClient MemberServiceClient,
	planClient PlanServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		memberClient: memberClient,
		planClient:   planClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// AssignPlan назначает члену клуба недельный план.
// Тариф определяется числом выбранных слотов (дней в неделю).
func (s *Service) AssignPlan(ctx context.Context, req *models.AssignPlanRequest) (*models.AssignPlanResponse, error) {
	s.logger.Info("AssignPlan: member=%d, slots=%d", req.MemberID, len(req.Slots))

	// 1. Валидируем входные данные
	if err := validateAssignPlan(req); err != nil {
		s.logger.Warn("AssignPlan: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем членство
	member, err := s.memberClient.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("AssignPlan: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		s.logger.Error("AssignPlan: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if !member.Active {
		s.logger.Warn("AssignPlan: member id=%d is inactive", req.MemberID)
		return nil, ErrMemberInactive
	}

	// 3. Все выбранные слоты должны существовать в недельном шаблоне
	defs, err := s.scheduleRepo.ListSlotDefinitions(ctx)
	if err != nil {
		s.logger.Error("AssignPlan: failed to load slot definitions: %v", err)
		return nil, fmt.Errorf("%w: failed to load slot definitions: %v", ErrInternal, err)
	}
	for _, slot := range req.Slots {
		if !slotDefined(defs, slot.Weekday, slot.SlotNumber) {
			s.logger.Warn("AssignPlan: slot (weekday=%d, slot=%d) not in template", slot.Weekday, slot.SlotNumber)
			return nil, fmt.Errorf("%w: weekday=%d slot=%d", ErrUnknownSlot, slot.Weekday, slot.SlotNumber)
		}
	}

	// 4. Цена по тарифу
	tier := len(req.Slots)
	price, err := s.planClient.GetTierPrice(ctx, tier)
	if err != nil {
		if errors.Is(err, planClient.ErrPriceNotFound) {
			s.logger.Warn("AssignPlan: no price for tier %d", tier)
			return nil, fmt.Errorf("%w: tier %d", ErrPriceNotConfigured, tier)
		}
		s.logger.Error("AssignPlan: failed to get tier price: %v", err)
		return nil, fmt.Errorf("%w: failed to get tier price: %v", ErrInternal, err)
	}

	effectiveFrom := domain.TruncateToDate(req.EffectiveFrom)
	if effectiveFrom.IsZero() {
		effectiveFrom = domain.TruncateToDate(s.timeProvider.Now())
	}

	var created []domain.RecurringBooking
	var deactivated int64

	// 5. Смена плана атомарна: старые строки снимаются и новые вставляются
	// в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		deactivated, err = s.bookingRepo.DeactivateRecurringByMember(txCtx, req.MemberID)
		if err != nil {
			s.logger.Error("AssignPlan: failed to deactivate previous plan: %v", err)
			return fmt.Errorf("%w: failed to deactivate previous plan: %v", ErrInternal, err)
		}

		created = make([]domain.RecurringBooking, 0, len(req.Slots))
		for _, slot := range req.Slots {
			booking := &domain.RecurringBooking{
				MemberID:      req.MemberID,
				Weekday:       slot.Weekday,
				SlotNumber:    slot.SlotNumber,
				PlanTier:      tier,
				UnitPrice:     price.UnitPrice,
				Active:        true,
				EffectiveFrom: effectiveFrom,
			}
			saved, err := s.bookingRepo.CreateRecurring(txCtx, booking)
			if err != nil {
				s.logger.Error("AssignPlan: failed to create recurring booking: %v", err)
				return fmt.Errorf("%w: failed to create recurring booking: %v", ErrInternal, err)
			}
			created = append(created, *saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AssignPlan: member=%d assigned tier=%d, replaced %d rows", req.MemberID, tier, deactivated)

	resp := &models.AssignPlanResponse{
		MemberID:      req.MemberID,
		PlanTier:      tier,
		UnitPrice:     price.UnitPrice,
		EffectiveFrom: effectiveFrom,
		Bookings:      make([]models.RecurringBookingResponse, 0, len(created)),
		Deactivated:   deactivated,
	}
	for i := range created {
		resp.Bookings = append(resp.Bookings, models.FromDomainRecurring(&created[i]))
	}
	return resp, nil
}

// GetMemberBookings получает активный план и предстоящие разовые бронирования
func (s *Service) GetMemberBookings(ctx context.Context, memberID int64) (*models.MemberBookingsResponse, error) {
	if memberID <= 0 {
		return nil, fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	recurring, err := s.bookingRepo.ListRecurringByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("GetMemberBookings: failed to load recurring bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load recurring bookings: %v", ErrInternal, err)
	}

	from := domain.TruncateToDate(s.timeProvider.Now())
	variable, err := s.bookingRepo.ListVariableByMember(ctx, memberID, from)
	if err != nil {
		s.logger.Error("GetMemberBookings: failed to load variable bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load variable bookings: %v", ErrInternal, err)
	}

	resp := &models.MemberBookingsResponse{
		MemberID:  memberID,
		Recurring: make([]models.RecurringBookingResponse, 0, len(recurring)),
		Variable:  make([]models.VariableBookingResponse, 0, len(variable)),
	}
	for i := range recurring {
		resp.Recurring = append(resp.Recurring, models.FromDomainRecurring(&recurring[i]))
	}
	for i := range variable {
		resp.Variable = append(resp.Variable, models.FromDomainVariable(&variable[i]))
	}
	return resp, nil
}

// slotDefined проверяет наличие активного слота в недельном шаблоне
func slotDefined(defs []domain.SlotDefinition, weekday, slotNumber int) bool {
	for _, d := range defs {
		if d.Active && d.Weekday == weekday && d.SlotNumber == slotNumber {
			return true
		}
	}
	return false
}
