package tensor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MatVec computes W·v.
//
// Requires W.Cols == len(v). Returns a fresh vector of length W.Rows whose
// element i is the dot product of row i of W with v.
func MatVec(w *Tensor, v []float64) ([]float64, error) {
	if w.Cols() != len(v) {
		return nil, mismatch("MatVec", Shape{Rows: 1, Cols: w.Cols()}, Shape{Rows: 1, Cols: len(v)})
	}
	out := make([]float64, w.Rows())
	mat.NewVecDense(len(out), out).MulVec(w.dense(), mat.NewVecDense(len(v), v))
	return out, nil
}

// MatTVec computes Wᵀ·v without materializing the transpose.
//
// Requires W.Rows == len(v). Element k of the result is Σ_j W[j][k]·v[j],
// which is how gradients flow back through a weight matrix.
func MatTVec(w *Tensor, v []float64) ([]float64, error) {
	if w.Rows() != len(v) {
		return nil, mismatch("MatTVec", Shape{Rows: 1, Cols: w.Rows()}, Shape{Rows: 1, Cols: len(v)})
	}
	out := make([]float64, w.Cols())
	mat.NewVecDense(len(out), out).MulVec(w.dense().T(), mat.NewVecDense(len(v), v))
	return out, nil
}

// MatMul computes dst = A·B, overwriting dst.
//
// Requires A.Cols == B.Rows and dst shaped A.Rows×B.Cols. dst must not be
// A or B.
func MatMul(dst, a, b *Tensor) error {
	if a.Cols() != b.Rows() {
		return mismatch("MatMul", Shape{Rows: a.Cols(), Cols: b.Cols()}, b.Shape())
	}
	want := Shape{Rows: a.Rows(), Cols: b.Cols()}
	if !dst.Shape().Equal(want) {
		return mismatch("MatMul", want, dst.Shape())
	}
	if dst == a || dst == b {
		return mismatch("MatMul", want, Shape{}) // aliased destination
	}
	dst.dense().Mul(a.dense(), b.dense())
	return nil
}

// AddOuter accumulates dst += alpha · x ⊗ y in place.
//
// Requires dst shaped len(x)×len(y). This is the per-sample weight-gradient
// update dW[j][k] += dPre[j]·input[k].
func AddOuter(dst *Tensor, alpha float64, x, y []float64) error {
	want := Shape{Rows: len(x), Cols: len(y)}
	if !dst.Shape().Equal(want) {
		return mismatch("AddOuter", dst.Shape(), want)
	}
	m := dst.dense()
	m.RankOne(m, alpha, mat.NewVecDense(len(x), x), mat.NewVecDense(len(y), y))
	return nil
}

// Add returns a fresh tensor holding a + b. Shapes must match exactly.
func Add(a, b *Tensor) (*Tensor, error) {
	if !a.Shape().Equal(b.Shape()) {
		return nil, mismatch("Add", a.Shape(), b.Shape())
	}
	out := Zeros(a.Shape())
	floats.AddTo(out.data, a.data, b.data)
	return out, nil
}

// AddInPlace accumulates dst += src. Shapes must match exactly.
func AddInPlace(dst, src *Tensor) error {
	if !dst.Shape().Equal(src.Shape()) {
		return mismatch("AddInPlace", dst.Shape(), src.Shape())
	}
	floats.Add(dst.data, src.data)
	return nil
}

// AddVec returns a fresh vector holding a + b. Lengths must match exactly.
func AddVec(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, mismatch("AddVec", Shape{Rows: 1, Cols: len(a)}, Shape{Rows: 1, Cols: len(b)})
	}
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)
	return out, nil
}

// Scale multiplies every element of t by s in place.
func Scale(t *Tensor, s float64) {
	floats.Scale(s, t.data)
}

// Apply maps every element of t through fn in place.
func Apply(t *Tensor, fn func(float64) float64) {
	for i, v := range t.data {
		t.data[i] = fn(v)
	}
}

// Map returns a fresh tensor with fn applied to every element of t.
func Map(t *Tensor, fn func(float64) float64) *Tensor {
	out := t.Clone()
	Apply(out, fn)
	return out
}

// Clip clamps value to [-bound, bound]. A bound <= 0 disables clipping.
//
// Only gradient signals are clipped; forward activations never are.
func Clip(value, bound float64) float64 {
	if bound <= 0 {
		return value
	}
	switch {
	case value > bound:
		return bound
	case value < -bound:
		return -bound
	default:
		return value
	}
}
