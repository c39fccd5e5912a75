// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/seqnet/internal/tensor"
)

// Tensor is a rows×cols matrix of float64 values.
type Tensor = tensor.Tensor

// Shape holds a tensor's extents.
type Shape = tensor.Shape

// Generator produces successive initial values.
type Generator = tensor.Generator

// ShapeError describes a rejected operand shape.
type ShapeError = tensor.ShapeError

// ErrShapeMismatch is wrapped by every shape error.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// Creation

// Zeros creates a zero-filled tensor. It panics on a non-positive shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// Generate creates a tensor filled by gen in row-major order.
func Generate(shape Shape, gen Generator) *Tensor {
	return tensor.Generate(shape, gen)
}

// Uniform returns a generator drawing uniformly from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) Generator {
	return tensor.Uniform(rng, lo, hi)
}

// FromSlice creates a tensor from a flat row-major slice.
func FromSlice(shape Shape, data []float64) (*Tensor, error) {
	return tensor.FromSlice(shape, data)
}

// FromRows creates a tensor from equally sized rows.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// Vector creates a 1×len(values) tensor.
func Vector(values []float64) (*Tensor, error) {
	return tensor.Vector(values)
}

// Operations

// MatVec computes W·v.
func MatVec(w *Tensor, v []float64) ([]float64, error) {
	return tensor.MatVec(w, v)
}

// MatTVec computes Wᵀ·v.
func MatTVec(w *Tensor, v []float64) ([]float64, error) {
	return tensor.MatTVec(w, v)
}

// MatMul computes dst = A·B.
func MatMul(dst, a, b *Tensor) error {
	return tensor.MatMul(dst, a, b)
}

// Add returns a + b.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// AddInPlace accumulates dst += src.
func AddInPlace(dst, src *Tensor) error {
	return tensor.AddInPlace(dst, src)
}

// Apply maps every element of t through fn in place.
func Apply(t *Tensor, fn func(float64) float64) {
	tensor.Apply(t, fn)
}

// Map returns a fresh tensor with fn applied to every element.
func Map(t *Tensor, fn func(float64) float64) *Tensor {
	return tensor.Map(t, fn)
}

// Clip clamps value to [-bound, bound]; bound <= 0 disables clipping.
func Clip(value, bound float64) float64 {
	return tensor.Clip(value, bound)
}
