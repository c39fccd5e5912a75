package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// DefaultFiniteDiffStep is the perturbation TrainFiniteDiff uses when step is 0.
const DefaultFiniteDiffStep = 1e-3

// TrainFiniteDiff performs one gradient step on the batch like Train, but
// estimates the gradient with forward differences of the loss instead of
// backpropagation: every parameter is nudged by step in turn and the change
// in loss divided by step.
//
// It costs one loss evaluation per parameter, so it is only practical for
// small networks. The estimated gradients are stored in each parameter's
// Grad and applied by the layers' optimizers. Returns the loss before the
// update.
func (n *Network) TrainFiniteDiff(input, target [][]float64, lr, step float64) (float64, error) {
	if step == 0 {
		step = DefaultFiniteDiffStep
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, fmt.Errorf("finite difference step must be positive, got %v", step)
	}

	origin, err := n.Loss(input, target)
	if err != nil {
		return 0, err
	}

	params := n.Parameters()
	var theta []float64
	for _, p := range params {
		theta = append(theta, p.Value().Data()...)
	}
	set := func(x []float64) {
		for _, p := range params {
			k := copy(p.Value().Data(), x)
			x = x[k:]
		}
	}

	// Shapes were checked by the first Loss call, so evaluation errors are
	// not expected here; the first one is kept and reported anyway.
	var evalErr error
	grad := fd.Gradient(nil, func(x []float64) float64 {
		set(x)
		l, err := n.Loss(input, target)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return l
	}, theta, &fd.Settings{
		Formula:     fd.Forward,
		Step:        step,
		OriginKnown: true,
		OriginValue: origin,
	})
	set(theta)
	if evalErr != nil {
		return 0, evalErr
	}

	for _, p := range params {
		k := copy(p.Grad().Data(), grad)
		grad = grad[k:]
	}
	for i, d := range n.layers {
		if err := d.Optimizer().Step(lr); err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return origin, nil
}
