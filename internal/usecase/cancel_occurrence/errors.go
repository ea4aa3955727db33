package cancel_occurrence

import "errors"

var (
	// ErrOccurrenceNotFound возвращается, когда у члена клуба нет занятия
	// на указанные дату и время
	ErrOccurrenceNotFound = errors.New("cancel_occurrence: occurrence not found")

	// ErrAlreadyCancelled возвращается при повторной отмене того же занятия
	ErrAlreadyCancelled = errors.New("cancel_occurrence: occurrence already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_occurrence: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_occurrence: internal error")
)
