package manage_absences

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	scheduleService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidAbsence     = "некорректное административное отсутствие"
	msgInvalidDateRange   = "конец периода раньше начала"
	msgInvalidAbsenceID   = "некорректный идентификатор отсутствия"
	msgAbsenceNotFound    = "административное отсутствие не найдено"
	msgMissingRangeParams = "обязательны параметры from и to в формате YYYY-MM-DD"
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

// HandleCreate POST /api/v1/admin/absences
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/absences - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.scheduleSvc.CreateAbsence(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidDateRange):
			h.logger.Warn("POST /admin/absences - Invalid date range: start=%s, end=%s", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /admin/absences - Invalid absence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAbsence)

		default:
			h.logger.Error("POST /admin/absences - Failed: start=%s, error=%v", req.StartDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/absences - Absence created: id=%d, kind=%s", result.ID, result.Kind)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}

// HandleDeactivate DELETE /api/v1/admin/absences/{id}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/absences - Invalid ID %q: %v", vars["id"], err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	if err := h.scheduleSvc.DeactivateAbsence(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAbsenceNotFound):
			h.logger.Warn("DELETE /admin/absences - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		default:
			h.logger.Error("DELETE /admin/absences - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/absences - Absence deactivated: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleList GET /api/v1/admin/absences?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, errFrom := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	to, errTo := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /admin/absences - Invalid range params: from=%q, to=%q",
			r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		handlers.RespondBadRequest(w, msgMissingRangeParams)
		return
	}

	result, err := h.scheduleSvc.ListAbsences(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /admin/absences - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := ListAbsencesResponse{Absences: make([]AbsenceResponse, 0, len(result))}
	for _, a := range result {
		resp.Absences = append(resp.Absences, *FromServiceResponse(a))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
