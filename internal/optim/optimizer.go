// Package optim implements the parameter update rules used by seqnet layers.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: plain gradient descent, no extra state
//   - Adam: Adaptive Moment Estimation with bias correction
//
// Every layer owns one optimizer bound to the layer's ordered parameter list.
// The layer fills each parameter's gradient during Backward, then calls Step
// exactly once with the caller's learning rate:
//
//	opt, err := optim.New(layer.Parameters(), optim.Config{Kind: optim.KindAdam})
//	...
//	// inside Backward, after gradients are averaged over the batch:
//	if err := opt.Step(lr); err != nil {
//	    return nil, err
//	}
package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/seqnet/internal/tensor"
)

// Param is a learnable tensor paired with its batch-averaged gradient.
//
// nn.Parameter implements this interface; optim does not import nn so
// that layers can own their optimizers.
type Param interface {
	// Name returns a descriptive name (e.g., "weight").
	Name() string

	// Value returns the parameter tensor, updated in place by Step.
	Value() *tensor.Tensor

	// Grad returns the gradient tensor read by Step. It has the same shape
	// as Value.
	Grad() *tensor.Tensor
}

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every bound parameter using its current
	// gradient. All gradient shapes are validated before any parameter
	// changes.
	Step(lr float64) error

	// Kind reports which update rule this optimizer applies.
	Kind() Kind
}

// Kind selects an update rule.
type Kind int

// Supported optimizers. The zero value means "use the default" (Adam).
const (
	KindSGD Kind = iota + 1
	KindAdam
)

// String returns the lower-case optimizer name.
func (k Kind) String() string {
	switch k {
	case KindSGD:
		return "sgd"
	case KindAdam:
		return "adam"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "sgd" or "adam" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sgd":
		return KindSGD, nil
	case "adam":
		return KindAdam, nil
	default:
		return 0, fmt.Errorf("unknown optimizer %q (want sgd or adam)", s)
	}
}

// Config is the configuration shared by all optimizers.
type Config struct {
	Kind Kind       // Update rule (default: KindAdam)
	Adam AdamConfig // Used when Kind is KindAdam
}

// New creates the optimizer selected by config, bound to params.
func New(params []Param, config Config) (Optimizer, error) {
	if config.Kind == 0 {
		config.Kind = KindAdam
	}

	switch config.Kind {
	case KindSGD:
		return NewSGD(params), nil
	case KindAdam:
		return NewAdam(params, config.Adam), nil
	default:
		return nil, fmt.Errorf("optim: unsupported optimizer %v", config.Kind)
	}
}

// checkGradients validates that every parameter carries a gradient of its
// own shape.
func checkGradients(params []Param) error {
	for _, p := range params {
		grad := p.Grad()
		if grad == nil {
			return fmt.Errorf("optim: parameter %q has no gradient", p.Name())
		}
		if !grad.Shape().Equal(p.Value().Shape()) {
			return fmt.Errorf("optim: parameter %q: %w", p.Name(),
				&tensor.ShapeError{Op: "Step", Want: p.Value().Shape(), Got: grad.Shape()})
		}
	}
	return nil
}
