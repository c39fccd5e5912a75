// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers of seqnet models.
//
// # Overview
//
// This package contains:
//   - Dense: fully connected layer with a selectable activation
//   - Recurrent: simple recurrent layer (tanh) trained with BPTT
//   - Sequential: ordered container threading Forward and Backward
//   - MSELoss: mean squared error and its output gradient
//
// # Basic Usage
//
//	layer, err := nn.NewDense(2, 1, nn.DenseConfig{Activation: nn.Sigmoid})
//	out, err := layer.Forward(x)
//	loss, grad, err := nn.MSELoss(out, y)
//	_, err = layer.Backward(grad, 0.5) // updates weights
//
// Backward consumes the cache written by Forward; calling it again
// without a new Forward returns ErrNoForwardCache.
package nn
