package assign_plan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	plansService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMemberID    = "некорректный идентификатор члена клуба"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMemberNotFound     = "член клуба не найден"
	msgMemberInactive     = "членство приостановлено"
	msgUnknownSlot        = "выбранный слот отсутствует в недельном шаблоне"
	msgPriceNotConfigured = "для тарифа не настроена цена"
	msgInvalidPlan        = "некорректный план: 1..5 слотов, не более одного на день недели"
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

// Handle PUT /api/v1/members/{memberId}/plan
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /members/plan - Invalid member ID %q: %v", vars["memberId"], err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	var req AssignPlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /members/plan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(memberID)
	if err != nil {
		h.logger.Warn("PUT /members/plan - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.plansSvc.AssignPlan(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, plansService.ErrMemberNotFound):
			h.logger.Warn("PUT /members/plan - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, plansService.ErrMemberInactive):
			h.logger.Warn("PUT /members/plan - Member inactive: member_id=%d", memberID)
			handlers.RespondForbidden(w, msgMemberInactive)

		case errors.Is(err, plansService.ErrUnknownSlot):
			h.logger.Warn("PUT /members/plan - Unknown slot: member_id=%d: %v", memberID, err)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, plansService.ErrPriceNotConfigured):
			h.logger.Warn("PUT /members/plan - Price not configured: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPriceNotConfigured)

		case errors.Is(err, plansService.ErrInvalidInput):
			h.logger.Warn("PUT /members/plan - Invalid plan: member_id=%d: %v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidPlan)

		default:
			h.logger.Error("PUT /members/plan - Failed: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /members/plan - Plan assigned: member_id=%d, tier=%d", memberID, result.PlanTier)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
