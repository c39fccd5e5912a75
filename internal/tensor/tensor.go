// Package tensor implements the dense numeric primitives used by seqnet.
//
// This package provides:
//   - Tensor: a rectangular float64 container with explicit row/column extents
//   - Allocation: Zeros, Full, Generate, FromSlice, FromRows
//   - Products: MatVec and MatMul (backed by gonum BLAS)
//   - Elementwise: Add, AddInPlace, Scale, Apply, Map, Clip
//
// Storage is row-major: element (r, c) lives at flat index r*cols+c, and
// len(data) == rows*cols holds for the lifetime of a tensor. Tensors are
// mutated in place by the primitives but never resized.
package tensor

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Tensor is a 2-D row-major float64 tensor.
//
// Example:
//
//	w := tensor.Zeros(tensor.Shape{Rows: 3, Cols: 4})
//	w.Set(0, 1, 0.5)
//	y, err := tensor.MatVec(w, []float64{1, 2, 3, 4})
type Tensor struct {
	shape Shape
	data  []float64
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int {
	return t.shape.Rows
}

// Cols returns the number of columns.
func (t *Tensor) Cols() int {
	return t.shape.Cols
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice. Writes through it mutate the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns element (r, c).
func (t *Tensor) At(r, c int) float64 {
	return t.data[r*t.shape.Cols+c]
}

// Set assigns element (r, c).
func (t *Tensor) Set(r, c int, v float64) {
	t.data[r*t.shape.Cols+c] = v
}

// Row returns row i as a view sharing the tensor's memory.
//
// The view has its capacity capped so appends never spill into row i+1.
func (t *Tensor) Row(i int) []float64 {
	start := i * t.shape.Cols
	end := start + t.shape.Cols
	return t.data[start:end:end]
}

// ToRows copies the tensor into a freshly allocated [][]float64.
func (t *Tensor) ToRows() [][]float64 {
	rows := make([][]float64, t.shape.Rows)
	for i := range rows {
		rows[i] = append([]float64(nil), t.Row(i)...)
	}
	return rows
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		shape: t.shape,
		data:  append([]float64(nil), t.data...),
	}
}

// CopyFrom overwrites t with the contents of src. Shapes must match exactly.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return mismatch("CopyFrom", t.shape, src.shape)
	}
	copy(t.data, src.data)
	return nil
}

// Zero sets every element to 0.
func (t *Tensor) Zero() {
	clear(t.data)
}

// Equal reports whether both tensors have the same shape and elements.
func (t *Tensor) Equal(other *Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// String renders the tensor one row per line.
func (t *Tensor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tensor%v", t.shape)
	for i := 0; i < t.shape.Rows; i++ {
		fmt.Fprintf(&b, "\n  %v", t.Row(i))
	}
	return b.String()
}

// dense wraps the backing slice as a gonum matrix without copying.
func (t *Tensor) dense() *mat.Dense {
	return mat.NewDense(t.shape.Rows, t.shape.Cols, t.data)
}
