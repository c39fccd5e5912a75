package nn

import "errors"

// Common errors.
var (
	// ErrNoForwardCache is returned by Backward when there is no pending
	// Forward to differentiate: either Forward was never called, or its
	// cache was already consumed by an earlier Backward.
	ErrNoForwardCache = errors.New("nn: no cached input, call Forward before Backward")

	// ErrInvalidSize is returned by constructors given a non-positive width.
	ErrInvalidSize = errors.New("nn: layer sizes must be positive")
)
