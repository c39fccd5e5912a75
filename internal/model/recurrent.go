package model

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
)

// Architecture holds the widths of a RecurrentModel.
type Architecture struct {
	InputSize  int
	HiddenSize int
	OutputSize int
}

// RecurrentConfig contains the options of a RecurrentModel. Both layers
// share the optimizer kind, clipping bound and initializer.
type RecurrentConfig struct {
	Optimizer optim.Config     // Update rule (default: Adam)
	Clip      float64          // Bound on pre-activation gradients; 0 disables
	Init      tensor.Generator // Initial weights and biases (default: uniform [-1, 1])
}

// DefaultRecurrentConfig returns the configuration used for sequence
// training: Adam, gradients clipped to [-1, 1], weights drawn from
// uniform [0, 0.1].
func DefaultRecurrentConfig() RecurrentConfig {
	return RecurrentConfig{
		Optimizer: optim.Config{Kind: optim.KindAdam},
		Clip:      1,
		Init:      tensor.Uniform(nil, 0, 0.1),
	}
}

// RecurrentModel is a Recurrent layer followed by an identity Dense layer.
//
// Forward maps a sequence of T input vectors to T output vectors; the
// Dense layer is applied to every hidden state.
type RecurrentModel struct {
	arch  Architecture
	rnn   *nn.Recurrent
	dense *nn.Dense
	seq   *nn.Sequential
}

// NewRecurrent creates a RecurrentModel with the given widths.
func NewRecurrent(arch Architecture, config RecurrentConfig) (*RecurrentModel, error) {
	rnn, err := nn.NewRecurrent(arch.InputSize, arch.HiddenSize, nn.RecurrentConfig{
		Optimizer: config.Optimizer,
		Clip:      config.Clip,
		Init:      config.Init,
	})
	if err != nil {
		return nil, err
	}
	dense, err := nn.NewDense(arch.HiddenSize, arch.OutputSize, nn.DenseConfig{
		Activation: nn.Identity,
		Optimizer:  config.Optimizer,
		Clip:       config.Clip,
		Init:       config.Init,
	})
	if err != nil {
		return nil, err
	}

	return &RecurrentModel{
		arch:  arch,
		rnn:   rnn,
		dense: dense,
		seq:   nn.NewSequential(rnn, dense),
	}, nil
}

// Forward runs one sequence through the model.
func (m *RecurrentModel) Forward(sequence [][]float64) ([][]float64, error) {
	out, err := forward(m.seq, sequence)
	if err != nil {
		return nil, err
	}
	return out.ToRows(), nil
}

// Train performs one BPTT step against the per-timestep targets.
func (m *RecurrentModel) Train(sequence, target [][]float64, lr float64) (float64, error) {
	return train(m.seq, sequence, target, lr)
}

// Loss returns the mean squared error over all timesteps and outputs.
func (m *RecurrentModel) Loss(sequence, target [][]float64) (float64, error) {
	return loss(m.seq, sequence, target)
}

// Architecture returns the widths the model was built with.
func (m *RecurrentModel) Architecture() Architecture {
	return m.arch
}

// Recurrent returns the recurrent layer.
func (m *RecurrentModel) Recurrent() *nn.Recurrent {
	return m.rnn
}

// Output returns the output Dense layer.
func (m *RecurrentModel) Output() *nn.Dense {
	return m.dense
}

// Parameters returns the recurrent layer's parameters followed by the
// output layer's.
func (m *RecurrentModel) Parameters() []*nn.Parameter {
	return m.seq.Parameters()
}

// Serialize returns a copy of both layers' weights and biases.
func (m *RecurrentModel) Serialize() *serialization.Snapshot {
	rnn := m.rnn.State()
	dense := m.dense.State()
	return &serialization.Snapshot{
		Type: serialization.ModelTypeRecurrent,
		Architecture: serialization.Architecture{
			InputSize:  m.arch.InputSize,
			HiddenSize: m.arch.HiddenSize,
			OutputSize: m.arch.OutputSize,
		},
		RNNLayer:   &rnn,
		DenseLayer: &dense,
	}
}

// Load validates the architecture and both layer shapes, then copies the
// parameters in. Nothing is modified on error; optimizer state is kept.
func (m *RecurrentModel) Load(s *serialization.Snapshot) error {
	if err := checkType(s, serialization.ModelTypeRecurrent); err != nil {
		return err
	}
	got := Architecture{
		InputSize:  s.Architecture.InputSize,
		HiddenSize: s.Architecture.HiddenSize,
		OutputSize: s.Architecture.OutputSize,
	}
	if got != m.arch {
		return fmt.Errorf("%w: checkpoint %+v, model %+v",
			serialization.ErrArchitectureMismatch, got, m.arch)
	}
	if s.RNNLayer == nil || s.DenseLayer == nil {
		return fmt.Errorf("%w: checkpoint is missing a layer", serialization.ErrArchitectureMismatch)
	}
	if err := m.rnn.CheckState(*s.RNNLayer); err != nil {
		return fmt.Errorf("rnnLayer: %w", err)
	}
	if err := m.dense.CheckState(*s.DenseLayer); err != nil {
		return fmt.Errorf("denseLayer: %w", err)
	}

	if err := m.rnn.LoadState(*s.RNNLayer); err != nil {
		return fmt.Errorf("rnnLayer: %w", err)
	}
	if err := m.dense.LoadState(*s.DenseLayer); err != nil {
		return fmt.Errorf("denseLayer: %w", err)
	}
	return nil
}

// String describes the model, e.g. "RNNModel[1→20 tanh, 20→1 identity]".
func (m *RecurrentModel) String() string {
	return fmt.Sprintf("RNNModel[%d→%d tanh, %d→%d identity]",
		m.arch.InputSize, m.arch.HiddenSize, m.arch.HiddenSize, m.arch.OutputSize)
}
