package resolve_month

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном годе или месяце
	ErrInvalidInput = errors.New("resolve_month: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_month: internal error")
)
