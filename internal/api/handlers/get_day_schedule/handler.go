package get_day_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	resolveDay "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase ResolveDayUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/days/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /schedule/days - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveDay.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, resolveDay.ErrInvalidInput):
			h.logger.Warn("GET /schedule/days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /schedule/days - Failed to resolve day %s: %v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
