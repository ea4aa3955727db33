package manage_slots

import (
	"errors"
	"net/http"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	scheduleService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректное определение слота"
)

type Handler struct {
	scheduleSvc ScheduleService
	logger      Logger
}

func NewHandler(scheduleSvc ScheduleService, logger Logger) *Handler {
	return &Handler{
		scheduleSvc: scheduleSvc,
		logger:      logger,
	}
}

// HandleUpsert PUT /api/v1/admin/slots
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.scheduleSvc.UpsertSlot(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/slots - Invalid slot: weekday=%d, slot=%d: %v",
				req.Weekday, req.SlotNumber, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PUT /admin/slots - Failed: weekday=%d, slot=%d, error=%v",
				req.Weekday, req.SlotNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/slots - Slot saved: id=%d, weekday=%d, slot=%d",
		result.ID, result.Weekday, result.SlotNumber)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// HandleList GET /api/v1/admin/slots
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleSvc.ListSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := ListSlotsResponse{Slots: make([]SlotResponse, 0, len(result))}
	for _, s := range result {
		resp.Slots = append(resp.Slots, *FromServiceResponse(s))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
