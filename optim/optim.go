// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/seqnet/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Param is a learnable tensor with its gradient.
type Param = optim.Param

// Config selects and configures an optimizer.
type Config = optim.Config

// Kind selects an update rule.
type Kind = optim.Kind

// Supported optimizers.
const (
	KindSGD  = optim.KindSGD
	KindAdam = optim.KindAdam
)

// ParseKind parses "sgd" or "adam".
func ParseKind(s string) (Kind, error) {
	return optim.ParseKind(s)
}

// New creates the optimizer selected by config.
func New(params []Param, config Config) (Optimizer, error) {
	return optim.New(params, config)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the plain gradient descent optimizer.
type SGD = optim.SGD

// NewSGD creates a new SGD optimizer.
func NewSGD(params []Param) *SGD {
	return optim.NewSGD(params)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(params []Param, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}
