// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/tensor"
)

// Layer is implemented by Dense and Recurrent.
type Layer = nn.Layer

// Parameter represents a trainable parameter of a layer.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and value.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, value)
}

// ErrNoForwardCache is returned by Backward without a pending Forward.
var ErrNoForwardCache = nn.ErrNoForwardCache

// ErrInvalidSize is returned by constructors given a non-positive width.
var ErrInvalidSize = nn.ErrInvalidSize

// Activations

// Activation selects the nonlinearity of a Dense layer.
type Activation = nn.Activation

// Supported activations.
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
	Sigmoid  = nn.Sigmoid
	Tanh     = nn.Tanh
)

// ParseActivation parses an activation name.
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// Layers

// Dense represents a fully connected layer.
type Dense = nn.Dense

// DenseConfig contains the options of a Dense layer.
type DenseConfig = nn.DenseConfig

// NewDense creates a new Dense layer.
//
// Example:
//
//	layer, err := nn.NewDense(784, 128, nn.DenseConfig{Activation: nn.ReLU})
func NewDense(in, out int, config DenseConfig) (*Dense, error) {
	return nn.NewDense(in, out, config)
}

// Recurrent represents a simple recurrent layer.
type Recurrent = nn.Recurrent

// RecurrentConfig contains the options of a Recurrent layer.
type RecurrentConfig = nn.RecurrentConfig

// NewRecurrent creates a new Recurrent layer.
func NewRecurrent(in, hidden int, config RecurrentConfig) (*Recurrent, error) {
	return nn.NewRecurrent(in, hidden, config)
}

// Sequential chains layers.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(layers ...Layer) *Sequential {
	return nn.NewSequential(layers...)
}

// Loss

// MSELoss returns the mean squared error and the gradient to pass to the
// output layer's Backward.
func MSELoss(pred, target *tensor.Tensor) (float64, *tensor.Tensor, error) {
	return nn.MSELoss(pred, target)
}
