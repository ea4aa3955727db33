package generate_invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	generateInvoice "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/generate_invoice"
)

const (
	msgInvalidMemberID    = "некорректный идентификатор члена клуба"
	msgInvalidPeriod      = "некорректный период, ожидается год и месяц 1..12"
	msgMemberNotFound     = "член клуба не найден"
	msgPriceNotConfigured = "для тарифа не настроена цена"
)

type Handler struct {
	useCase  GenerateInvoiceUseCase
	notifier Notifier
	logger   Logger
}

func NewHandler(useCase GenerateInvoiceUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/members/{memberId}/invoices/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /invoices - Invalid member ID %q: %v", vars["memberId"], err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateInvoice.Request{
		MemberID: memberID,
		Year:     year,
		Month:    month,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateInvoice.ErrMemberNotFound):
			h.logger.Warn("POST /invoices - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, generateInvoice.ErrPriceNotConfigured):
			h.logger.Warn("POST /invoices - Price not configured: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPriceNotConfigured)

		case errors.Is(err, generateInvoice.ErrInvalidInput):
			h.logger.Warn("POST /invoices - Invalid input: member_id=%d: %v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /invoices - Failed to generate invoice: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort, после сохранения счета
	h.notifier.Publish(r.Context(), result.Event)

	h.logger.Info("POST /invoices - Invoice generated: member_id=%d, period=%d-%02d, net=%s",
		memberID, year, month, result.NetAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
