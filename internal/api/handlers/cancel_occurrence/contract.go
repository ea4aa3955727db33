package cancel_occurrence

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	cancelOccurrence "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/cancel_occurrence"
)

type CancelOccurrenceUseCase interface {
	Execute(ctx context.Context, req *cancelOccurrence.Request) (*cancelOccurrence.Response, error)
}

// Notifier получает доменные события после успешной операции
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
