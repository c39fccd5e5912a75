// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 matrices used throughout seqnet.
//
// # Overview
//
// A Tensor is a rectangular rows×cols container; a vector is a 1×N tensor
// and a batch of vectors is an N×width tensor with one sample per row.
// The element (r, c) lives at flat index r*cols+c.
//
// Products are delegated to gonum, operating directly on the tensor's
// backing slice without copies.
//
// # Basic Usage
//
//	import "github.com/born-ml/seqnet/tensor"
//
//	func main() {
//	    w, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	    y, err := tensor.MatVec(w, []float64{1, 1}) // [3 7]
//
//	    // Random initialization in a fixed range.
//	    gen := tensor.Uniform(rand.New(rand.NewSource(1)), -1, 1)
//	    x := tensor.Generate(tensor.Shape{Rows: 4, Cols: 2}, gen)
//	}
//
// # Errors
//
// Every operation checks its operand shapes and returns an error wrapping
// ErrShapeMismatch (as a *ShapeError) instead of truncating or padding:
//
//	if _, err := tensor.MatVec(w, v); errors.Is(err, tensor.ErrShapeMismatch) {
//	    // handle
//	}
package tensor
