package create_booking

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
)

// ScheduleRepository интерфейс репозитория каталога расписания
type ScheduleRepository interface {
	ListSlotDefinitionsByWeekday(ctx context.Context, weekday int) ([]domain.SlotDefinition, error)
	GetExceptionByDate(ctx context.Context, date time.Time) (*domain.ExceptionDay, error)
	ListAbsencesInRange(ctx context.Context, from, to time.Time) ([]domain.AbsenceOverride, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListRecurringByWeekday(ctx context.Context, weekday int, asOf time.Time) ([]domain.RecurringBooking, error)
	ListVariableByDate(ctx context.Context, date time.Time) ([]domain.VariableBooking, error)
	CreateVariable(ctx context.Context, b *domain.VariableBooking) (*domain.VariableBooking, error)
}

// CancellationRepository интерфейс репозитория журнала отмен
type CancellationRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Cancellation, error)
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
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
