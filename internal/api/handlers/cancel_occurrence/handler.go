package cancel_occurrence

import (
	"errors"
	"net/http"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/middleware"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	cancelOccurrence "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/cancel_occurrence"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgUnauthorized       = "требуется аутентификация"
	msgOccurrenceNotFound = "занятие не найдено"
	msgAlreadyCancelled   = "занятие уже отменено"
)

type Handler struct {
	useCase  CancelOccurrenceUseCase
	notifier Notifier
	logger   Logger
}

func NewHandler(useCase CancelOccurrenceUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/cancellations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CancelOccurrenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(memberID, domain.CancelledByMember)
	if err != nil {
		h.logger.Warn("POST /cancellations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelOccurrence.ErrOccurrenceNotFound):
			h.logger.Warn("POST /cancellations - Occurrence not found: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondNotFound(w, msgOccurrenceNotFound)

		case errors.Is(err, cancelOccurrence.ErrAlreadyCancelled):
			h.logger.Warn("POST /cancellations - Already cancelled: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, cancelOccurrence.ErrInvalidInput):
			h.logger.Warn("POST /cancellations - Invalid input: member_id=%d: %v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("POST /cancellations - Failed to cancel: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort, после успешной записи в журнал
	h.notifier.Publish(r.Context(), result.Event)

	h.logger.Info("POST /cancellations - Cancellation recorded: id=%d, member_id=%d, is_late=%t",
		result.ID, memberID, result.IsLate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
