package generate_invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	memberClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	planClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
)

// UseCase use case генерации месячного счета.
// Счет — производная величина: повторная генерация пересчитывает и
// перезаписывает строку, пока платеж не обработан.
type UseCase struct {
	scheduleRepo     ScheduleRepository
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	invoiceRepo      InvoiceRepository
	memberClient     MemberServiceClient
	planClient       PlanServiceClient
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
	invoiceRepo InvoiceRepository,
	memberClient MemberServiceClient,
	planClient PlanServiceClient,
	txManager TransactionManager,
	engineConfig domain.EngineConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		invoiceRepo:      invoiceRepo,
		memberClient:     memberClient,
		planClient:       planClient,
		txManager:        txManager,
		engineConfig:     engineConfig,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case генерации счета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateInvoice: member=%d, period=%d-%02d", req.MemberID, req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateInvoice: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем, что член клуба зарегистрирован
	if _, err := uc.memberClient.GetMember(ctx, req.MemberID); err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("GenerateInvoice: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("GenerateInvoice: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	// Загрузка входов, вычисление и запись идут в одной транзакции:
	// параллельная отмена не может изменить журнал между чтениями
	var resp *Response
	txErr := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		resp, err = uc.generate(ctx, req, now)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// generate загружает состояние месяца, вычисляет и сохраняет счет
func (uc *UseCase) generate(ctx context.Context, req *Request, now time.Time) (*Response, error) {
	dates := domain.MonthDates(req.Year, time.Month(req.Month), uc.engineConfig.Location)
	from, to := dates[0], dates[len(dates)-1]

	// 3. Загружаем бронирования члена клуба
	recurring, err := uc.bookingRepo.ListRecurringByMember(ctx, req.MemberID)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load recurring bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load recurring bookings: %v", ErrInternal, err)
	}

	variable, err := uc.bookingRepo.ListVariableByMemberMonth(ctx, req.MemberID, from, to)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load variable bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load variable bookings: %v", ErrInternal, err)
	}

	// 4. Месяц без активности — нулевой счет без обращения к тарифам:
	// приостановленный план не должен падать из-за ненастроенной цены
	if len(recurring) == 0 && len(variable) == 0 {
		uc.logger.Info("GenerateInvoice: member id=%d has no activity in %d-%02d, zero invoice",
			req.MemberID, req.Year, req.Month)
		return uc.persist(ctx, &domain.MonthlyInvoice{
			MemberID:    req.MemberID,
			Year:        req.Year,
			Month:       req.Month,
			UnitPrice:   decimal.Zero,
			GrossAmount: decimal.Zero,
			DiscountPct: decimal.Zero,
			NetAmount:   decimal.Zero,
			GeneratedAt: now,
		}, now)
	}

	// 5. Определяем тариф: по активному плану, для месяца только с разовыми
	// бронированиями — по минимальному тарифу
	daysPerWeek := planTier(recurring)

	price, err := uc.planClient.GetTierPrice(ctx, daysPerWeek)
	if err != nil {
		if errors.Is(err, planClient.ErrPriceNotFound) {
			uc.logger.Warn("GenerateInvoice: no price for tier %d", daysPerWeek)
			return nil, fmt.Errorf("%w: tier %d", ErrPriceNotConfigured, daysPerWeek)
		}
		uc.logger.Error("GenerateInvoice: failed to get tier price: %v", err)
		return nil, fmt.Errorf("%w: failed to get tier price: %v", ErrInternal, err)
	}

	discount := uc.planClient.GetMemberDiscountWithGracefulDegradation(ctx, req.MemberID)

	// 6. Загружаем состояние расписания месяца
	slotDefs, err := uc.scheduleRepo.ListSlotDefinitions(ctx)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load slot definitions: %v", err)
		return nil, fmt.Errorf("%w: failed to load slot definitions: %v", ErrInternal, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptionsInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to load exceptions: %v", ErrInternal, err)
	}
	exceptionsByDate := make(map[string]*domain.ExceptionDay, len(exceptions))
	for i := range exceptions {
		exceptionsByDate[exceptions[i].Date.Format(domain.DateFormat)] = &exceptions[i]
	}

	absences, err := uc.scheduleRepo.ListAbsencesInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load absences: %v", err)
		return nil, fmt.Errorf("%w: failed to load absences: %v", ErrInternal, err)
	}

	ledger, err := uc.cancellationRepo.ListByMemberMonth(ctx, req.MemberID, from, to)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to load cancellations: %v", err)
		return nil, fmt.Errorf("%w: failed to load cancellations: %v", ErrInternal, err)
	}

	// 7. Вычисляем счет
	invoice := domain.ComputeInvoice(uc.engineConfig, domain.InvoiceInputs{
		MemberID:      req.MemberID,
		Year:          req.Year,
		Month:         time.Month(req.Month),
		SlotDefs:      slotDefs,
		Exceptions:    exceptionsByDate,
		Absences:      absences,
		Recurring:     recurring,
		Variable:      variable,
		Cancellations: ledger,
		UnitPrice:     price.UnitPrice,
		DiscountPct:   discount,
		GeneratedAt:   now,
	})

	uc.logger.Info("GenerateInvoice: member=%d %d-%02d scheduled=%d billed=%d net=%s",
		req.MemberID, req.Year, req.Month,
		invoice.ClassesScheduled, invoice.ClassesBilled, invoice.NetAmount)

	return uc.persist(ctx, &invoice, now)
}

// persist сохраняет счет и строит событие
func (uc *UseCase) persist(ctx context.Context, invoice *domain.MonthlyInvoice, now time.Time) (*Response, error) {
	saved, err := uc.invoiceRepo.Upsert(ctx, invoice)
	if err != nil {
		uc.logger.Error("GenerateInvoice: failed to save invoice: %v", err)
		return nil, fmt.Errorf("%w: failed to save invoice: %v", ErrInternal, err)
	}

	event := domain.NewEvent(domain.EventInvoiceGenerated, saved.MemberID, now, map[string]string{
		"year":           fmt.Sprintf("%d", saved.Year),
		"month":          fmt.Sprintf("%d", saved.Month),
		"classes_billed": fmt.Sprintf("%d", saved.ClassesBilled),
		"net_amount":     saved.NetAmount.String(),
	})

	return toResponse(saved, event), nil
}

// planTier определяет тариф (дней в неделю) по активным еженедельным
// бронированиям. Без активного плана тарифицируем по минимальному тарифу.
func planTier(recurring []domain.RecurringBooking) int {
	for _, r := range recurring {
		if r.Active && r.PlanTier > 0 {
			return r.PlanTier
		}
	}
	return domain.MinPlanDaysPerWeek
}
