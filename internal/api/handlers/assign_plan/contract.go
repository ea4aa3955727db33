package assign_plan

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

type PlansService interface {
	AssignPlan(ctx context.Context, req *models.AssignPlanRequest) (*models.AssignPlanResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
