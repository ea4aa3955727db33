package create_booking

import "errors"

var (
	// ErrMemberNotFound возвращается, когда член клуба не зарегистрирован
	ErrMemberNotFound = errors.New("create_booking: member not found")

	// ErrMemberInactive возвращается для приостановленного членства
	ErrMemberInactive = errors.New("create_booking: member is inactive")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotClosed возвращается, когда на дату и время нет открытого слота
	// (день закрыт исключением, выходной или слот подавлен отсутствием)
	ErrSlotClosed = errors.New("create_booking: slot is closed on this date")

	// ErrDuplicateBooking возвращается, когда член клуба уже записан в этот слот
	ErrDuplicateBooking = errors.New("create_booking: member already booked in this slot")

	// ErrCapacityExceeded возвращается, когда все места слота заняты
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
