// Package model composes nn layers into trainable models.
//
// Two models are provided:
//   - Network: an ordered stack of Dense layers (feed-forward)
//   - RecurrentModel: one Recurrent layer followed by an identity Dense layer
//
// Both expose the same surface: Forward, Train, Loss, Serialize and Load.
// Train runs one forward pass, computes the mean squared error, and
// backpropagates through the layers in reverse, each layer applying its
// own optimizer step.
//
// Models are not safe for concurrent use.
package model

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
)

// Model is implemented by Network and RecurrentModel.
type Model interface {
	// Forward maps a batch (or sequence) of input vectors to output vectors.
	Forward(input [][]float64) ([][]float64, error)

	// Train performs one training step and returns the loss before the update.
	Train(input, target [][]float64, lr float64) (float64, error)

	// Loss returns the mean squared error of the current parameters
	// without updating them.
	Loss(input, target [][]float64) (float64, error)

	// Serialize returns a copy of the learnable parameters.
	Serialize() *serialization.Snapshot

	// Load replaces the learnable parameters with those in s. On error the
	// model is left unchanged.
	Load(s *serialization.Snapshot) error
}

// FromSnapshot builds a model whose architecture is read from s and loads
// its parameters. Layers use their default optimizer; only the learnable
// parameters come from the snapshot.
func FromSnapshot(s *serialization.Snapshot) (Model, error) {
	if err := serialization.ValidateSnapshot(s); err != nil {
		return nil, err
	}

	var (
		m   Model
		err error
	)
	switch s.Type {
	case serialization.ModelTypeRecurrent:
		a := s.Architecture
		m, err = NewRecurrent(Architecture{InputSize: a.InputSize, HiddenSize: a.HiddenSize, OutputSize: a.OutputSize},
			DefaultRecurrentConfig())
	case serialization.ModelTypeNetwork:
		var config NetworkConfig
		config, err = networkConfig(s.Architecture.Activations)
		if err == nil {
			m, err = NewNetwork(s.Architecture.LayerSizes, config)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", serialization.ErrArchitectureMismatch, err)
	}

	if err := m.Load(s); err != nil {
		return nil, err
	}
	return m, nil
}

// networkConfig recovers hidden and output activations from their names.
func networkConfig(acts []string) (NetworkConfig, error) {
	var config NetworkConfig
	if len(acts) == 0 {
		return config, nil
	}
	var err error
	if config.Hidden, err = nn.ParseActivation(acts[0]); err != nil {
		return config, err
	}
	if config.Output, err = nn.ParseActivation(acts[len(acts)-1]); err != nil {
		return config, err
	}
	return config, nil
}

// forward threads input rows through seq.
func forward(seq *nn.Sequential, input [][]float64) (*tensor.Tensor, error) {
	x, err := tensor.FromRows(input)
	if err != nil {
		return nil, err
	}
	return seq.Forward(x)
}

// train runs one forward/backward pass of seq against target.
func train(seq *nn.Sequential, input, target [][]float64, lr float64) (float64, error) {
	y, err := tensor.FromRows(target)
	if err != nil {
		return 0, err
	}
	pred, err := forward(seq, input)
	if err != nil {
		return 0, err
	}
	loss, grad, err := nn.MSELoss(pred, y)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	if _, err := seq.Backward(grad, lr); err != nil {
		return 0, err
	}
	return loss, nil
}

// loss evaluates seq against target without a parameter update.
func loss(seq *nn.Sequential, input, target [][]float64) (float64, error) {
	y, err := tensor.FromRows(target)
	if err != nil {
		return 0, err
	}
	pred, err := forward(seq, input)
	if err != nil {
		return 0, err
	}
	l, _, err := nn.MSELoss(pred, y)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	return l, nil
}

func checkType(s *serialization.Snapshot, want string) error {
	if s == nil {
		return serialization.ErrMissingModel
	}
	if s.Type != want {
		return fmt.Errorf("%w: snapshot type %q, model type %q",
			serialization.ErrArchitectureMismatch, s.Type, want)
	}
	return nil
}
