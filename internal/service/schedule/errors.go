package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input data")

	// ErrInvalidDateRange возвращается, когда конец диапазона раньше начала
	ErrInvalidDateRange = errors.New("schedule.service: invalid date range")

	// ErrKindWeekdayMismatch возвращается, когда вид исключения не совпадает
	// с типом дня: closed_weekday только для будней, enabled_weekend — для выходных
	ErrKindWeekdayMismatch = errors.New("schedule.service: exception kind does not match weekday")

	// ErrExceptionAlreadyExists возвращается при втором активном исключении на дату
	ErrExceptionAlreadyExists = errors.New("schedule.service: active exception already exists for this date")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedule.service: exception day not found")

	// ErrAbsenceNotFound возвращается, когда отсутствие не найдено
	ErrAbsenceNotFound = errors.New("schedule.service: absence override not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
