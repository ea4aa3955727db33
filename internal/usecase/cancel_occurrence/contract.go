package cancel_occurrence

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
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
	GetVariableByOccurrence(ctx context.Context, memberID int64, date time.Time, start, end types.TimeString) (*domain.VariableBooking, error)
	UpdateVariableStatus(ctx context.Context, id int64, status domain.VariableStatus) error
}

// CancellationRepository интерфейс репозитория журнала отмен
type CancellationRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Cancellation, error)
	Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error)
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
