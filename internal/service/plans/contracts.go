package plans

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateRecurring(ctx context.Context, b *domain.RecurringBooking) (*domain.RecurringBooking, error)
	ListRecurringByMember(ctx context.Context, memberID int64) ([]domain.RecurringBooking, error)
	DeactivateRecurringByMember(ctx context.Context, memberID int64) (int64, error)
	ListVariableByMember(ctx context.Context, memberID int64, from time.Time) ([]domain.VariableBooking, error)
}

// ScheduleRepository интерфейс репозитория каталога расписания
type ScheduleRepository interface {
	ListSlotDefinitions(ctx context.Context) ([]domain.SlotDefinition, error)
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// PlanServiceClient интерфейс клиента PlanService
type PlanServiceClient interface {
	GetTierPrice(ctx context.Context, daysPerWeek int) (*planservice.TierPrice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
