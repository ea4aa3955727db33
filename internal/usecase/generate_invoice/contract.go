package generate_invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
)

// ScheduleRepository интерфейс репозитория каталога расписания
type ScheduleRepository interface {
	ListSlotDefinitions(ctx context.Context) ([]domain.SlotDefinition, error)
	ListExceptionsInRange(ctx context.Context, from, to time.Time) ([]domain.ExceptionDay, error)
	ListAbsencesInRange(ctx context.Context, from, to time.Time) ([]domain.AbsenceOverride, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListRecurringByMember(ctx context.Context, memberID int64) ([]domain.RecurringBooking, error)
	ListVariableByMemberMonth(ctx context.Context, memberID int64, from, to time.Time) ([]domain.VariableBooking, error)
}

// CancellationRepository интерфейс репозитория журнала отмен
type CancellationRepository interface {
	ListByMemberMonth(ctx context.Context, memberID int64, from, to time.Time) ([]domain.Cancellation, error)
}

// InvoiceRepository интерфейс репозитория месячных счетов
type InvoiceRepository interface {
	Upsert(ctx context.Context, inv *domain.MonthlyInvoice) (*domain.MonthlyInvoice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// PlanServiceClient интерфейс клиента PlanService
type PlanServiceClient interface {
	GetTierPrice(ctx context.Context, daysPerWeek int) (*planservice.TierPrice, error)
	GetMemberDiscountWithGracefulDegradation(ctx context.Context, memberID int64) decimal.Decimal
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
