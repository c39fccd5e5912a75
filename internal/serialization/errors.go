package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrArchitectureMismatch = errors.New("architecture mismatch")
	ErrUnknownModelType     = errors.New("unknown model type")
	ErrMissingModel         = errors.New("checkpoint has no model")
	ErrCheckpointTooLarge   = errors.New("checkpoint exceeds maximum size")
	ErrRaggedMatrix         = errors.New("matrix rows have different lengths")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "ragged_matrix", "missing_layer")
	Field   string // JSON path of the offending field
	Details string // Additional details
	Err     error  // Sentinel this error wraps, if any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
