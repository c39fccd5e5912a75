// Package nn implements the layers of a seqnet model.
//
// This package provides building blocks for constructing networks:
//   - Layer interface: the closed set of trainable layers (Dense, Recurrent)
//   - Parameter: learnable tensors paired with their gradients
//   - Activation: Identity, ReLU, Sigmoid, Tanh
//   - MSELoss: squared-error loss and its output gradient
//   - Sequential: ordered container threading Forward and Backward
//
// Layers are trained eagerly. Forward caches what the matching Backward
// needs; Backward computes parameter gradients, averages them over the
// batch, and immediately applies the layer's own optimizer:
//
//	out, err := layer.Forward(input)      // caches input + activations
//	dInput, err := layer.Backward(dOut, lr) // updates parameters, consumes cache
//
// Layers are not safe for concurrent use.
package nn

import (
	"github.com/born-ml/seqnet/internal/tensor"
)

// Layer is the interface implemented by Dense and Recurrent.
//
// The set of layers is closed; Layer cannot be implemented outside this
// package.
type Layer interface {
	// Forward computes the output for a batch (or sequence) of row vectors.
	//
	// input is N×InFeatures; the result is N×OutFeatures. The input and
	// intermediate activations are cached for the next Backward call.
	Forward(input *tensor.Tensor) (*tensor.Tensor, error)

	// Backward consumes the forward cache, applies one optimizer step with
	// learning rate lr, and returns the gradient w.r.t. the input.
	//
	// dOut must be shaped like the last Forward output. Calling Backward
	// without a preceding Forward returns ErrNoForwardCache.
	Backward(dOut *tensor.Tensor, lr float64) (*tensor.Tensor, error)

	// Parameters returns the learnable parameters in a fixed order.
	Parameters() []*Parameter

	// InFeatures returns the expected input width.
	InFeatures() int

	// OutFeatures returns the output width.
	OutFeatures() int

	layer()
}

// checkInput validates a Forward input against the layer's width.
func checkInput(op string, input *tensor.Tensor, in int) error {
	if input == nil {
		return &tensor.ShapeError{Op: op, Want: tensor.Shape{Rows: 1, Cols: in}}
	}
	if input.Cols() != in {
		return &tensor.ShapeError{
			Op:   op,
			Want: tensor.Shape{Rows: input.Rows(), Cols: in},
			Got:  input.Shape(),
		}
	}
	return nil
}

// checkGrad validates a Backward output gradient against the cached output shape.
func checkGrad(op string, dOut *tensor.Tensor, want tensor.Shape) error {
	if dOut == nil {
		return &tensor.ShapeError{Op: op, Want: want}
	}
	if !dOut.Shape().Equal(want) {
		return &tensor.ShapeError{Op: op, Want: want, Got: dOut.Shape()}
	}
	return nil
}
