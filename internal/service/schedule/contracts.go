package schedule

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
)

// ScheduleRepository интерфейс репозитория каталога расписания
type ScheduleRepository interface {
	UpsertSlotDefinition(ctx context.Context, def *domain.SlotDefinition) (*domain.SlotDefinition, error)
	ListSlotDefinitions(ctx context.Context) ([]domain.SlotDefinition, error)
	CreateExceptionDay(ctx context.Context, ex *domain.ExceptionDay) (*domain.ExceptionDay, error)
	DeactivateException(ctx context.Context, id int64) error
	CreateAbsenceOverride(ctx context.Context, a *domain.AbsenceOverride) (*domain.AbsenceOverride, error)
	DeactivateAbsence(ctx context.Context, id int64) error
	ListAbsencesInRange(ctx context.Context, from, to time.Time) ([]domain.AbsenceOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
