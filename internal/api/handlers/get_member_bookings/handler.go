package get_member_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	plansService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans/models"
)

const (
	msgInvalidMemberID = "некорректный идентификатор члена клуба"
)

type Handler struct {
	plansSvc PlansService
	logger   Logger
}

func NewHandler(plansSvc PlansService, logger Logger) *Handler {
	return &Handler{
		plansSvc: plansSvc,
		logger:   logger,
	}
}

// MemberBookingsResponse HTTP response model
type MemberBookingsResponse struct {
	MemberID  int64               `json:"memberId"`
	Recurring []RecurringResponse `json:"recurring"`
	Variable  []VariableResponse  `json:"variable"`
}

// RecurringResponse строка еженедельного плана
type RecurringResponse struct {
	ID            int64  `json:"id"`
	Weekday       int    `json:"weekday"`
	SlotNumber    int    `json:"slotNumber"`
	PlanTier      int    `json:"planTier"`
	UnitPrice     string `json:"unitPrice"`
	EffectiveFrom string `json:"effectiveFrom"`
}

// VariableResponse разовое бронирование
type VariableResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// Handle GET /api/v1/members/{memberId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/bookings - Invalid member ID %q: %v", vars["memberId"], err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	result, err := h.plansSvc.GetMemberBookings(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, plansService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMemberID)
		default:
			h.logger.Error("GET /members/bookings - Failed: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(result))
}

func fromServiceResponse(resp *models.MemberBookingsResponse) *MemberBookingsResponse {
	out := &MemberBookingsResponse{
		MemberID:  resp.MemberID,
		Recurring: make([]RecurringResponse, 0, len(resp.Recurring)),
		Variable:  make([]VariableResponse, 0, len(resp.Variable)),
	}
	for _, b := range resp.Recurring {
		out.Recurring = append(out.Recurring, RecurringResponse{
			ID:            b.ID,
			Weekday:       b.Weekday,
			SlotNumber:    b.SlotNumber,
			PlanTier:      b.PlanTier,
			UnitPrice:     b.UnitPrice.StringFixed(2),
			EffectiveFrom: b.EffectiveFrom.Format(domain.DateFormat),
		})
	}
	for _, b := range resp.Variable {
		out.Variable = append(out.Variable, VariableResponse{
			ID:        b.ID,
			Date:      b.Date.Format(domain.DateFormat),
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
			Status:    b.Status,
		})
	}
	return out
}
