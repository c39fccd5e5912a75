package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
)

// NetworkConfig contains the options of a feed-forward Network.
type NetworkConfig struct {
	Hidden    nn.Activation    // Activation of hidden layers (default: ReLU)
	Output    nn.Activation    // Activation of the last layer (default: same as Hidden)
	Optimizer optim.Config     // Update rule of every layer (default: Adam)
	Clip      float64          // Bound on pre-activation gradients; 0 disables
	Init      tensor.Generator // Initial weights and biases (default: uniform [-1, 1])
}

// Network is a feed-forward stack of Dense layers.
//
// Example:
//
//	net, err := model.NewNetwork([]int{2, 2, 1}, model.NetworkConfig{
//	    Hidden:    nn.Sigmoid,
//	    Optimizer: optim.Config{Kind: optim.KindSGD},
//	})
//	loss, err := net.Train(inputs, targets, 1.0)
type Network struct {
	sizes  []int
	layers []*nn.Dense
	seq    *nn.Sequential
}

// NewNetwork creates a Network with one Dense layer between each pair of
// consecutive sizes. sizes needs at least two positive entries.
func NewNetwork(sizes []int, config NetworkConfig) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layer sizes, got %d", nn.ErrInvalidSize, len(sizes))
	}
	if config.Hidden == 0 {
		config.Hidden = nn.ReLU
	}
	if config.Output == 0 {
		config.Output = config.Hidden
	}

	n := &Network{
		sizes: slices.Clone(sizes),
		seq:   nn.NewSequential(),
	}
	for i := 1; i < len(sizes); i++ {
		act := config.Hidden
		if i == len(sizes)-1 {
			act = config.Output
		}
		d, err := nn.NewDense(sizes[i-1], sizes[i], nn.DenseConfig{
			Activation: act,
			Optimizer:  config.Optimizer,
			Clip:       config.Clip,
			Init:       config.Init,
		})
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i-1, err)
		}
		n.layers = append(n.layers, d)
		n.seq.Add(d)
	}
	return n, nil
}

// Forward runs the batch through every layer.
func (n *Network) Forward(input [][]float64) ([][]float64, error) {
	out, err := forward(n.seq, input)
	if err != nil {
		return nil, err
	}
	return out.ToRows(), nil
}

// Train performs one gradient step on the batch.
func (n *Network) Train(input, target [][]float64, lr float64) (float64, error) {
	return train(n.seq, input, target, lr)
}

// Loss returns the mean squared error on the batch.
func (n *Network) Loss(input, target [][]float64) (float64, error) {
	return loss(n.seq, input, target)
}

// Sizes returns the layer widths the network was built with.
func (n *Network) Sizes() []int {
	return slices.Clone(n.sizes)
}

// Layers returns the Dense layers in order.
func (n *Network) Layers() []*nn.Dense {
	return slices.Clone(n.layers)
}

// Parameters returns every learnable parameter in layer order.
func (n *Network) Parameters() []*nn.Parameter {
	return n.seq.Parameters()
}

// Serialize returns a copy of every layer's weights and biases.
func (n *Network) Serialize() *serialization.Snapshot {
	s := &serialization.Snapshot{
		Type:         serialization.ModelTypeNetwork,
		Architecture: serialization.Architecture{LayerSizes: slices.Clone(n.sizes)},
	}
	for _, d := range n.layers {
		s.Architecture.Activations = append(s.Architecture.Activations, d.Activation().String())
		s.Layers = append(s.Layers, d.State())
	}
	return s
}

// Load validates s against the network's architecture and every layer
// shape, then copies the parameters in. Nothing is modified on error.
func (n *Network) Load(s *serialization.Snapshot) error {
	if err := checkType(s, serialization.ModelTypeNetwork); err != nil {
		return err
	}
	if !slices.Equal(s.Architecture.LayerSizes, n.sizes) {
		return fmt.Errorf("%w: layer sizes %v, model has %v",
			serialization.ErrArchitectureMismatch, s.Architecture.LayerSizes, n.sizes)
	}
	if acts := s.Architecture.Activations; len(acts) > 0 && !slices.Equal(acts, n.activations()) {
		return fmt.Errorf("%w: activations %v, model has %v",
			serialization.ErrArchitectureMismatch, acts, n.activations())
	}
	if len(s.Layers) != len(n.layers) {
		return fmt.Errorf("%w: %d layers, model has %d",
			serialization.ErrArchitectureMismatch, len(s.Layers), len(n.layers))
	}
	for i, d := range n.layers {
		if err := d.CheckState(s.Layers[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	for i, d := range n.layers {
		if err := d.LoadState(s.Layers[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

func (n *Network) activations() []string {
	acts := make([]string, len(n.layers))
	for i, d := range n.layers {
		acts[i] = d.Activation().String()
	}
	return acts
}

// String describes the layer stack, e.g. "Network[2→2 sigmoid, 2→1 sigmoid]".
func (n *Network) String() string {
	parts := make([]string, len(n.layers))
	for i, d := range n.layers {
		parts[i] = fmt.Sprintf("%d→%d %v", d.InFeatures(), d.OutFeatures(), d.Activation())
	}
	return "Network[" + strings.Join(parts, ", ") + "]"
}
