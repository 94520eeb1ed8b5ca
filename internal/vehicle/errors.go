package vehicle

import "errors"

var (
	ErrEmptyPath = errors.New("vehicle: empty path")
	ErrNonFinite = errors.New("vehicle: non-finite input")
	ErrNotReady  = errors.New("vehicle: track not ready")
)
