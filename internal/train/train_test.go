package train_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/seqnet/internal/data"
	"github.com/born-ml/seqnet/internal/model"
	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
	"github.com/born-ml/seqnet/internal/train"
)

// scripted returns losses[k] on its k-th Train call and records the
// learning rates and first input values it saw.
type scripted struct {
	losses []float64
	calls  int
	lrs    []float64
	seen   []float64
	err    error
}

func (s *scripted) Forward(input [][]float64) ([][]float64, error) { return input, nil }

func (s *scripted) Train(input, _ [][]float64, lr float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.lrs = append(s.lrs, lr)
	s.seen = append(s.seen, input[0][0])
	l := s.losses[s.calls%len(s.losses)]
	s.calls++
	return l, nil
}

func (s *scripted) Loss(_, _ [][]float64) (float64, error) { return 0, nil }

func (s *scripted) Serialize() *serialization.Snapshot { return nil }

func (s *scripted) Load(*serialization.Snapshot) error { return nil }

var _ model.Model = (*scripted)(nil)

func samples(n int) []data.Sample {
	out := make([]data.Sample, n)
	for i := range out {
		out[i] = data.Sample{Input: [][]float64{{float64(i)}}, Target: [][]float64{{0}}}
	}
	return out
}

func TestStepDecay(t *testing.T) {
	s := train.StepDecay{Initial: 1, Factor: 0.5, Every: 10}
	assert.Equal(t, 1.0, s.LearningRate(0))
	assert.Equal(t, 1.0, s.LearningRate(9))
	assert.Equal(t, 0.5, s.LearningRate(10))
	assert.Equal(t, 0.25, s.LearningRate(25))

	assert.Equal(t, 3.0, train.StepDecay{Initial: 3, Factor: 0.1}.LearningRate(100))
	assert.Equal(t, 0.2, train.Constant(0.2).LearningRate(7))
}

func TestFit_EpochLossAndBest(t *testing.T) {
	// Two samples per epoch; epoch losses 2, 1, 3.
	m := &scripted{losses: []float64{3, 1, 1, 1, 2, 4}}
	tr := train.New(m, train.Config{Epochs: 3, Schedule: train.StepDecay{Initial: 1, Factor: 0.5, Every: 1}}, nil)

	res, err := tr.Fit(context.Background(), samples(2))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Epochs)
	assert.Equal(t, []float64{2, 1, 3}, res.History)
	assert.Equal(t, 3.0, res.FinalLoss)
	assert.Equal(t, 1.0, res.BestLoss)
	assert.Equal(t, 1, res.BestEpoch)
	assert.False(t, res.Stopped)
	assert.Equal(t, []float64{1, 1, 0.5, 0.5, 0.25, 0.25}, m.lrs)
}

func TestFit_OnImprove(t *testing.T) {
	m := &scripted{losses: []float64{5, 4, 4, 3}}
	var improved []int
	tr := train.New(m, train.Config{
		Epochs: 4,
		OnImprove: func(epoch int, _ float64) error {
			improved = append(improved, epoch)
			return nil
		},
	}, nil)

	_, err := tr.Fit(context.Background(), samples(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, improved)

	boom := errors.New("disk full")
	tr.Config.OnImprove = func(int, float64) error { return boom }
	_, err = tr.Fit(context.Background(), samples(1))
	assert.ErrorIs(t, err, boom)
}

func TestFit_EarlyStopping(t *testing.T) {
	m := &scripted{losses: []float64{1, 1, 1, 1, 1, 1, 1, 1}}
	tr := train.New(m, train.Config{Epochs: 100, Patience: 3}, nil)

	res, err := tr.Fit(context.Background(), samples(1))
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Equal(t, 4, res.Epochs)
	assert.Equal(t, 0, res.BestEpoch)
}

func TestFit_Cancelled(t *testing.T) {
	m := &scripted{losses: []float64{1}}
	ctx, cancel := context.WithCancel(context.Background())
	tr := train.New(m, train.Config{
		Epochs: 10,
		OnImprove: func(int, float64) error {
			cancel()
			return nil
		},
	}, nil)

	res, err := tr.Fit(ctx, samples(1))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Epochs)
	assert.Equal(t, 1.0, res.BestLoss)
}

func TestFit_Errors(t *testing.T) {
	tr := train.New(&scripted{losses: []float64{1}}, train.Config{}, nil)
	_, err := tr.Fit(context.Background(), nil)
	assert.ErrorIs(t, err, train.ErrNoSamples)

	boom := errors.New("shape")
	tr = train.New(&scripted{err: boom}, train.Config{}, nil)
	_, err = tr.Fit(context.Background(), samples(2))
	assert.ErrorIs(t, err, boom)
}

func TestFit_Shuffle(t *testing.T) {
	m := &scripted{losses: []float64{1}}
	tr := train.New(m, train.Config{Epochs: 20, Shuffle: true, Rand: rand.New(rand.NewSource(1))}, nil)

	_, err := tr.Fit(context.Background(), samples(5))
	require.NoError(t, err)
	require.Len(t, m.seen, 100)

	inOrder := true
	for epoch := 0; epoch < 20; epoch++ {
		seen := map[float64]bool{}
		for i, v := range m.seen[epoch*5 : epoch*5+5] {
			seen[v] = true
			if v != float64(i) {
				inOrder = false
			}
		}
		assert.Len(t, seen, 5, "every sample is visited once per epoch")
	}
	assert.False(t, inOrder)
}

func TestFit_Logging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	m := &scripted{losses: []float64{4, 3, 2, 1, 0.5}}
	tr := train.New(m, train.Config{Epochs: 5, LogEvery: 2}, logger)
	_, err := tr.Fit(context.Background(), samples(1))
	require.NoError(t, err)

	var epochs []any
	for _, e := range hook.AllEntries() {
		if e.Message == "Epoch completed" {
			epochs = append(epochs, e.Data["epoch"])
			assert.Contains(t, e.Data, "loss")
			assert.Contains(t, e.Data, "lr")
		}
	}
	assert.Equal(t, []any{0, 2, 4}, epochs)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Training finished", last.Message)
	assert.Equal(t, 0.5, last.Data["best_loss"])
}

func TestFit_RecurrentRamp(t *testing.T) {
	m, err := model.NewRecurrent(model.Architecture{InputSize: 1, HiddenSize: 8, OutputSize: 1}, model.RecurrentConfig{
		Optimizer: optim.Config{Kind: optim.KindAdam},
		Clip:      1,
		Init:      tensor.Uniform(rand.New(rand.NewSource(2)), 0, 0.1),
	})
	require.NoError(t, err)

	set, err := data.Ramp(rand.New(rand.NewSource(3)), 10, 5)
	require.NoError(t, err)
	tr := train.New(m, train.Config{Epochs: 30, Schedule: train.Constant(0.01)}, nil)

	res, err := tr.Fit(context.Background(), set)
	require.NoError(t, err)
	assert.Less(t, res.BestLoss, res.History[0])
	assert.Equal(t, 30, res.Epochs)
}

func TestFit_XORSamples(t *testing.T) {
	net, err := model.NewNetwork([]int{2, 4, 1}, model.NetworkConfig{
		Hidden: nn.Tanh,
		Output: nn.Sigmoid,
		Init:   tensor.Uniform(rand.New(rand.NewSource(4)), -1, 1),
	})
	require.NoError(t, err)

	tr := train.New(net, train.Config{Epochs: 50, Schedule: train.Constant(0.05)}, nil)
	res, err := tr.Fit(context.Background(), data.XOR())
	require.NoError(t, err)
	assert.Len(t, res.History, 50)
	assert.Less(t, res.BestLoss, res.History[0])
}
