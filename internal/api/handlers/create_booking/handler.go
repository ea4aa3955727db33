package create_booking

import (
	"errors"
	"net/http"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/middleware"
	createBooking "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgUnauthorized       = "требуется аутентификация"
	msgMemberNotFound     = "член клуба не найден"
	msgMemberInactive     = "членство приостановлено"
	msgInvalidDate        = "дата занятия в прошлом"
	msgSlotClosed         = "на выбранные дату и время нет открытого слота"
	msgDuplicateBooking   = "вы уже записаны на это занятие"
	msgCapacityExceeded   = "все места в слоте заняты"
)

type Handler struct {
	useCase  CreateBookingUseCase
	notifier Notifier
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(memberID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrSlotClosed):
			h.logger.Warn("POST /bookings - Slot closed: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondConflict(w, msgSlotClosed)

		case errors.Is(err, createBooking.ErrMemberNotFound):
			h.logger.Warn("POST /bookings - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrMemberInactive):
			h.logger.Warn("POST /bookings - Member inactive: member_id=%d", memberID)
			handlers.RespondForbidden(w, msgMemberInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: member_id=%d, date=%s", memberID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: member_id=%d: %v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort, после успешной записи
	h.notifier.Publish(r.Context(), result.Event)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, member_id=%d", result.ID, memberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
