package create_booking

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	createBooking "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
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
