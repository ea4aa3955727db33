package resolve_day

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
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
}

// CancellationRepository интерфейс репозитория журнала отмен
type CancellationRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Cancellation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
