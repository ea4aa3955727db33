package booking

import "errors"

var (
	ErrRecurringNotFound = errors.New("booking.repository: recurring booking not found")
	ErrVariableNotFound  = errors.New("booking.repository: variable booking not found")
	ErrDuplicateBooking  = errors.New("booking.repository: duplicate booking")
	ErrBuildQuery        = errors.New("booking.repository: failed to build query")
	ErrExecQuery         = errors.New("booking.repository: failed to execute query")
	ErrScanRow           = errors.New("booking.repository: failed to scan row")
)
