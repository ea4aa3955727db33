package get_month_schedule

import (
	"context"

	resolveMonth "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_month"
)

type ResolveMonthUseCase interface {
	Execute(ctx context.Context, req *resolveMonth.Request) (*resolveMonth.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
