package nn

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/tensor"
)

// Sequential is a container that chains layers together.
//
// Forward feeds each layer's output to the next one; Backward walks the
// layers in reverse, feeding each returned input gradient to the previous
// layer as its output gradient.
//
// Example:
//
//	hidden, _ := nn.NewDense(2, 2, nn.DenseConfig{Activation: nn.Sigmoid})
//	output, _ := nn.NewDense(2, 1, nn.DenseConfig{Activation: nn.Sigmoid})
//	seq := nn.NewSequential(hidden, output)
//
//	pred, err := seq.Forward(batch)
//	loss, grad, err := nn.MSELoss(pred, target)
//	_, err = seq.Backward(grad, lr)
type Sequential struct {
	layers []Layer
}

// NewSequential creates a new Sequential container.
func NewSequential(layers ...Layer) *Sequential {
	return &Sequential{layers: layers}
}

// Forward applies all layers in order.
func (s *Sequential) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	output := input
	for i, l := range s.layers {
		var err error
		if output, err = l.Forward(output); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return output, nil
}

// Backward backpropagates dOut through all layers in reverse order and
// returns the gradient w.r.t. the first layer's input.
func (s *Sequential) Backward(dOut *tensor.Tensor, lr float64) (*tensor.Tensor, error) {
	grad := dOut
	for i := len(s.layers) - 1; i >= 0; i-- {
		var err error
		if grad, err = s.layers[i].Backward(grad, lr); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return grad, nil
}

// Parameters returns the parameters of all layers in order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range s.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Add appends a layer to the sequence.
func (s *Sequential) Add(l Layer) {
	s.layers = append(s.layers, l)
}

// Len returns the number of layers.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}
