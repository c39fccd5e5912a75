package tensor

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned (wrapped in a *ShapeError) when operand
// dimensions are incompatible. Operations never truncate or pad.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError provides detailed information about a shape mismatch.
type ShapeError struct {
	Op   string // Operation that rejected its operands (e.g., "MatVec")
	Want Shape  // Shape the operation required
	Got  Shape  // Shape it was given
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: want %v, got %v", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap allows errors.Is(err, ErrShapeMismatch).
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func mismatch(op string, want, got Shape) error {
	return &ShapeError{Op: op, Want: want, Got: got}
}
