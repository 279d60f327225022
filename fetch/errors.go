package fetch

import "errors"

// Common errors
var (
	// ErrMissingResult is reported when a constituent finished without
	// producing either a value or an error.
	ErrMissingResult = errors.New("constituent produced no result")

	// ErrPanicked wraps a panic recovered from a constituent or fetch function.
	ErrPanicked = errors.New("constituent panicked")

	// ErrQueueStopped is returned when work is dispatched to a stopped queue.
	ErrQueueStopped = errors.New("delivery queue is stopped")
)
