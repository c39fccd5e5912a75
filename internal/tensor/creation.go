package tensor

import (
	"fmt"
	"math/rand"
)

// Generator produces one element value per call. It is used to fill
// tensors at allocation time (e.g., random weight initialization).
type Generator func() float64

// Uniform returns a Generator drawing uniformly from [lo, hi).
//
// A nil rng uses the math/rand global source.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	w := tensor.Generate(tensor.Shape{Rows: 4, Cols: 2}, tensor.Uniform(rng, -1, 1))
func Uniform(rng *rand.Rand, lo, hi float64) Generator {
	span := hi - lo
	if rng == nil {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		return func() float64 { return lo + rand.Float64()*span }
	}
	return func() float64 { return lo + rng.Float64()*span }
}

// Zeros creates a tensor filled with zeros.
//
// Panics if the shape is invalid; callers validate sizes first.
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err) // Shape validation should prevent this
	}
	return &Tensor{
		shape: shape,
		data:  make([]float64, shape.NumElements()),
	}
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Generate creates a tensor whose elements are produced by gen in
// row-major order.
func Generate(shape Shape, gen Generator) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = gen()
	}
	return t
}

// Vector creates a 1×len(values) tensor holding a copy of values.
func Vector(values []float64) (*Tensor, error) {
	return FromSlice(Shape{Rows: 1, Cols: len(values)}, values)
}

// FromSlice creates a tensor from a flat row-major slice.
// The slice is copied into the tensor's memory.
func FromSlice(shape Shape, data []float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("FromSlice: %w: %w", ErrShapeMismatch, err)
	}
	if shape.NumElements() != len(data) {
		return nil, mismatch("FromSlice", shape, Shape{Rows: 1, Cols: len(data)})
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// FromRows creates a tensor from a batch of equally sized vectors.
//
// Every row must have the width of the first one; ragged or empty input
// is rejected with a shape error.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w: empty batch", ErrShapeMismatch)
	}
	width := len(rows[0])
	t := Zeros(Shape{Rows: len(rows), Cols: width})
	for i, row := range rows {
		if len(row) != width {
			return nil, mismatch(fmt.Sprintf("FromRows row %d", i), Shape{Rows: 1, Cols: width}, Shape{Rows: 1, Cols: len(row)})
		}
		copy(t.Row(i), row)
	}
	return t, nil
}
