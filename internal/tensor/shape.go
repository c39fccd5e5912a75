package tensor

import "fmt"

// Shape represents the dimensions of a 2-D tensor.
//
// A vector is a 1×N tensor. A batch of N vectors of width W is an N×W
// tensor whose row i holds sample i (or timestep i for sequences).
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks if the shape is valid (both dimensions > 0).
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("invalid shape %v: dimensions must be > 0", s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// String formats the shape as [rows×cols].
func (s Shape) String() string {
	return fmt.Sprintf("[%d×%d]", s.Rows, s.Cols)
}
