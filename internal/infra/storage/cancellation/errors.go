package cancellation

import "errors"

var (
	ErrNotFound         = errors.New("cancellation.repository: cancellation not found")
	ErrAlreadyCancelled = errors.New("cancellation.repository: occurrence already cancelled")
	ErrBuildQuery       = errors.New("cancellation.repository: failed to build query")
	ErrExecQuery        = errors.New("cancellation.repository: failed to execute query")
	ErrScanRow          = errors.New("cancellation.repository: failed to scan row")
)
