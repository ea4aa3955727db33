package get_member_bookings

import (
	"context"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

type PlansService interface {
	GetMemberBookings(ctx context.Context, memberID int64) (*models.MemberBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
