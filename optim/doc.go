// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rules of seqnet layers.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface shared by both
//
// Layers build their own optimizer from a Config at construction time and
// step it once per Backward call, so most users only choose a Kind:
//
//	import (
//	    "github.com/born-ml/seqnet/nn"
//	    "github.com/born-ml/seqnet/optim"
//	)
//
//	layer, err := nn.NewDense(2, 1, nn.DenseConfig{
//	    Optimizer: optim.Config{Kind: optim.KindSGD},
//	})
//
// # Adam
//
// Adam keeps a first and second moment tensor per parameter and one step
// counter per layer:
//
//	m = β1*m + (1-β1)*g
//	v = β2*v + (1-β2)*g²
//	param -= lr * (m/(1-β1^t)) / (sqrt(v/(1-β2^t)) + ε)
//
// Zero fields of AdamConfig take the defaults β1=0.9, β2=0.999, ε=1e-8.
package optim
