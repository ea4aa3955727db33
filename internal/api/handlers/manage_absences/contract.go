package manage_absences

import (
	"context"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error)
	DeactivateAbsence(ctx context.Context, id int64) error
	ListAbsences(ctx context.Context, from, to time.Time) ([]*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
