package manage_exceptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	scheduleService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidException    = "некорректное исключение календаря"
	msgKindMismatch        = "вид исключения не соответствует дню недели"
	msgExceptionExists     = "на эту дату уже есть активное исключение"
	msgInvalidExceptionID  = "некорректный идентификатор исключения"
	msgExceptionNotFound   = "исключение календаря не найдено"
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

// HandleCreate POST /api/v1/admin/exception-days
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/exception-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/exception-days - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.scheduleSvc.CreateException(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrKindWeekdayMismatch):
			h.logger.Warn("POST /admin/exception-days - Kind mismatch: date=%s, kind=%s", req.Date, req.Kind)
			handlers.RespondBadRequest(w, msgKindMismatch)

		case errors.Is(err, scheduleService.ErrExceptionAlreadyExists):
			h.logger.Warn("POST /admin/exception-days - Already exists: date=%s", req.Date)
			handlers.RespondConflict(w, msgExceptionExists)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /admin/exception-days - Invalid exception: date=%s: %v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidException)

		default:
			h.logger.Error("POST /admin/exception-days - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/exception-days - Exception created: id=%d, date=%s", result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}

// HandleDeactivate DELETE /api/v1/admin/exception-days/{id}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/exception-days - Invalid ID %q: %v", vars["id"], err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.scheduleSvc.DeactivateException(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrExceptionNotFound):
			h.logger.Warn("DELETE /admin/exception-days - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		default:
			h.logger.Error("DELETE /admin/exception-days - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/exception-days - Exception deactivated: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
