package get_day_schedule

import (
	"context"

	resolveDay "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
)

type ResolveDayUseCase interface {
	Execute(ctx context.Context, req *resolveDay.Request) (*resolveDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
