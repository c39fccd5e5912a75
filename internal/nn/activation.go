package nn

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the elementwise nonlinearity of a Dense layer.
type Activation int

// Supported activations. The zero value means "use the layer default".
const (
	Identity Activation = iota + 1
	ReLU
	Sigmoid
	Tanh
)

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case Identity:
		return x
	case ReLU:
		return math.Max(0, x)
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	default:
		panic(fmt.Sprintf("nn: invalid activation %d", int(a)))
	}
}

// Derivative returns the derivative of the activation at the
// pre-activation value pre.
//
// ReLU uses 0 at pre == 0.
func (a Activation) Derivative(pre float64) float64 {
	switch a {
	case Identity:
		return 1
	case ReLU:
		if pre > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		s := 1 / (1 + math.Exp(-pre))
		return s * (1 - s)
	case Tanh:
		t := math.Tanh(pre)
		return 1 - t*t
	default:
		panic(fmt.Sprintf("nn: invalid activation %d", int(a)))
	}
}

// Valid reports whether a is one of the defined activations.
func (a Activation) Valid() bool {
	return a >= Identity && a <= Tanh
}

// String returns the lower-case activation name.
func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation parses an activation name (case-insensitive).
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity", "linear":
		return Identity, nil
	case "relu":
		return ReLU, nil
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	default:
		return 0, fmt.Errorf("nn: unknown activation %q", s)
	}
}
