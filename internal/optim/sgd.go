package optim

import (
	"gonum.org/v1/gonum/floats"
)

// SGD implements plain (stochastic) gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// SGD keeps no state between steps.
//
// Example:
//
//	opt := optim.NewSGD(params)
//	for range steps {
//	    // ... fill gradients ...
//	    opt.Step(1.0)
//	}
type SGD struct {
	params []Param
}

// NewSGD creates a new SGD optimizer bound to params.
func NewSGD(params []Param) *SGD {
	return &SGD{params: params}
}

// Step performs a single gradient descent update.
func (s *SGD) Step(lr float64) error {
	if err := checkGradients(s.params); err != nil {
		return err
	}

	for _, p := range s.params {
		// param -= lr * grad
		floats.AddScaled(p.Value().Data(), -lr, p.Grad().Data())
	}
	return nil
}

// Kind returns KindSGD.
func (s *SGD) Kind() Kind {
	return KindSGD
}
