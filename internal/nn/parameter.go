package nn

import (
	"github.com/born-ml/seqnet/internal/tensor"
)

// Parameter represents a trainable tensor of a layer.
//
// The gradient tensor is allocated once with the value's shape. Backward
// overwrites it with the batch-averaged gradient before the optimizer step,
// so after a Backward call Grad holds the gradient that was just applied.
//
// Parameter implements optim.Param.
type Parameter struct {
	name  string         // Parameter name (e.g., "weight", "bias")
	value *tensor.Tensor // The parameter tensor
	grad  *tensor.Tensor // Gradient of the last Backward, same shape as value
}

// NewParameter creates a new trainable parameter with a zero gradient.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
		grad:  tensor.Zeros(value.Shape()),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter tensor.
func (p *Parameter) Value() *tensor.Tensor {
	return p.value
}

// Grad returns the gradient tensor.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// ZeroGrad resets the gradient to zero.
func (p *Parameter) ZeroGrad() {
	p.grad.Zero()
}
