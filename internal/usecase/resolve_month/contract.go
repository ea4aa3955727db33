package resolve_month

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
)

// ScheduleRepository интерфейс репозитория каталога расписания
type ScheduleRepository interface {
	ListSlotDefinitions(ctx context.Context) ([]domain.SlotDefinition, error)
	ListExceptionsInRange(ctx context.Context, from, to time.Time) ([]domain.ExceptionDay, error)
	ListAbsencesInRange(ctx context.Context, from, to time.Time) ([]domain.AbsenceOverride, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveRecurring(ctx context.Context, asOf time.Time) ([]domain.RecurringBooking, error)
	ListVariableByDateRange(ctx context.Context, from, to time.Time) ([]domain.VariableBooking, error)
}

// CancellationRepository интерфейс репозитория журнала отмен
type CancellationRepository interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Cancellation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
