package get_month_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	resolveMonth "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_month"
)

const (
	msgInvalidYear  = "некорректный год"
	msgInvalidMonth = "некорректный месяц, ожидается 1..12"
)

type Handler struct {
	useCase ResolveMonthUseCase
	logger  Logger
}

func NewHandler(useCase ResolveMonthUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/months/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /schedule/months - Invalid year %q: %v", vars["year"], err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /schedule/months - Invalid month %q: %v", vars["month"], err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveMonth.Request{Year: year, Month: month})
	if err != nil {
		switch {
		case errors.Is(err, resolveMonth.ErrInvalidInput):
			h.logger.Warn("GET /schedule/months - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
		default:
			h.logger.Error("GET /schedule/months - Failed to resolve %d-%02d: %v", year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
