package manage_slots

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertSlot(ctx context.Context, req *models.UpsertSlotRequest) (*models.SlotResponse, error)
	ListSlots(ctx context.Context) ([]*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
