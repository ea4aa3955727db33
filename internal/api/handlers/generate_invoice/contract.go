package generate_invoice

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	generateInvoice "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/generate_invoice"
)

type GenerateInvoiceUseCase interface {
	Execute(ctx context.Context, req *generateInvoice.Request) (*generateInvoice.Response, error)
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
