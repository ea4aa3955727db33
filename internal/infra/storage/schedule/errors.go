package schedule

import "errors"

var (
	// ErrSlotNotFound возвращается, когда определение слота не найдено
	ErrSlotNotFound = errors.New("schedule.repository: slot definition not found")

	// ErrExceptionNotFound возвращается, когда исключение календаря не найдено
	ErrExceptionNotFound = errors.New("schedule.repository: exception day not found")

	// ErrAbsenceNotFound возвращается, когда отсутствие не найдено
	ErrAbsenceNotFound = errors.New("schedule.repository: absence override not found")

	// ErrExceptionExists возвращается при попытке создать второе активное
	// исключение на ту же дату
	ErrExceptionExists = errors.New("schedule.repository: active exception already exists for date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
