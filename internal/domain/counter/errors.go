package counter

import "errors"

var (
	// ErrCounterNotFound indicates no counter has the given id.
	ErrCounterNotFound = errors.New("counter not found")
	// ErrInvalidTarget indicates a target value that is not an integer > 0.
	ErrInvalidTarget = errors.New("target value must be a positive integer")
	// ErrInvalidSnapshot indicates a persisted snapshot that cannot be restored.
	ErrInvalidSnapshot = errors.New("invalid counter snapshot")
)

// ErrInvalidCount indicates a negative count in an explicit edit.
var ErrInvalidCount = errors.New("count must not be negative")
