package nn_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
)

var sgd = optim.Config{Kind: optim.KindSGD}

func mustRows(t *testing.T, rows [][]float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromRows(rows)
	require.NoError(t, err)
	return x
}

// newDense builds a Dense layer with fixed weights and biases.
func newDense(t *testing.T, w [][]float64, b []float64, config nn.DenseConfig) *nn.Dense {
	t.Helper()
	d, err := nn.NewDense(len(w[0]), len(w), config)
	require.NoError(t, err)
	require.NoError(t, d.LoadState(serialization.DenseState{Weights: w, Biases: b}))
	return d
}

// setParams copies a flat vector into the parameters in order.
func setParams(params []*nn.Parameter, x []float64) {
	for _, p := range params {
		n := copy(p.Value().Data(), x)
		x = x[n:]
	}
}

func flatParams(params []*nn.Parameter) []float64 {
	var out []float64
	for _, p := range params {
		out = append(out, p.Value().Data()...)
	}
	return out
}

func flatGrads(params []*nn.Parameter) []float64 {
	var out []float64
	for _, p := range params {
		out = append(out, p.Grad().Data()...)
	}
	return out
}

func TestActivation(t *testing.T) {
	tests := []struct {
		act        nn.Activation
		x          float64
		value      float64
		derivative float64
	}{
		{nn.Identity, -2, -2, 1},
		{nn.ReLU, -2, 0, 0},
		{nn.ReLU, 0, 0, 0},
		{nn.ReLU, 3, 3, 1},
		{nn.Sigmoid, 0, 0.5, 0.25},
		{nn.Tanh, 0, 0, 1},
		{nn.Tanh, 1, math.Tanh(1), 1 - math.Tanh(1)*math.Tanh(1)},
	}

	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			assert.InDelta(t, tt.value, tt.act.Apply(tt.x), 1e-12)
			assert.InDelta(t, tt.derivative, tt.act.Derivative(tt.x), 1e-12)
		})
	}
}

func TestParseActivation(t *testing.T) {
	for _, a := range []nn.Activation{nn.Identity, nn.ReLU, nn.Sigmoid, nn.Tanh} {
		got, err := nn.ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := nn.ParseActivation(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, nn.Identity, got)

	_, err = nn.ParseActivation("softmax")
	assert.Error(t, err)
	assert.False(t, nn.Activation(0).Valid())
}

func TestParameter(t *testing.T) {
	value := tensor.Full(tensor.Shape{Rows: 2, Cols: 3}, 1)
	p := nn.NewParameter("weight", value)

	assert.Equal(t, "weight", p.Name())
	assert.Same(t, value, p.Value())
	require.NotNil(t, p.Grad())
	assert.True(t, p.Grad().Shape().Equal(value.Shape()))

	p.Grad().Set(1, 2, 5)
	p.ZeroGrad()
	assert.Equal(t, 0.0, p.Grad().At(1, 2))
}

func TestNewDense_Invalid(t *testing.T) {
	_, err := nn.NewDense(0, 2, nn.DenseConfig{})
	assert.ErrorIs(t, err, nn.ErrInvalidSize)

	_, err = nn.NewDense(2, 2, nn.DenseConfig{Activation: nn.Activation(42)})
	assert.Error(t, err)

	_, err = nn.NewDense(2, 2, nn.DenseConfig{Optimizer: optim.Config{Kind: optim.Kind(9)}})
	assert.Error(t, err)
}

func TestDense_Forward(t *testing.T) {
	d := newDense(t, [][]float64{{1, 2}, {-1, -1}}, []float64{0.5, 0}, nn.DenseConfig{})
	assert.Equal(t, nn.ReLU, d.Activation())
	assert.Equal(t, 2, d.InFeatures())
	assert.Equal(t, 2, d.OutFeatures())

	out, err := d.Forward(mustRows(t, [][]float64{{1, 1}, {0, 2}}))
	require.NoError(t, err)

	// Row 0: [3.5, relu(-2)], row 1: [4.5, relu(-2)].
	assert.Equal(t, [][]float64{{3.5, 0}, {4.5, 0}}, out.ToRows())
}

func TestDense_ForwardShapeMismatch(t *testing.T) {
	d, err := nn.NewDense(2, 3, nn.DenseConfig{})
	require.NoError(t, err)

	_, err = d.Forward(mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	var shapeErr *tensor.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "Dense.Forward", shapeErr.Op)

	_, err = d.Forward(nil)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestDense_BackwardWithoutForward(t *testing.T) {
	d := newDense(t, [][]float64{{1, 2}}, []float64{0}, nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd})
	dOut := mustRows(t, [][]float64{{1}})

	_, err := d.Backward(dOut, 0.1)
	require.ErrorIs(t, err, nn.ErrNoForwardCache)

	_, err = d.Forward(mustRows(t, [][]float64{{1, 1}}))
	require.NoError(t, err)
	_, err = d.Backward(dOut, 0.1)
	require.NoError(t, err)

	// The cache is consumed by the first Backward.
	_, err = d.Backward(dOut, 0.1)
	assert.ErrorIs(t, err, nn.ErrNoForwardCache)
}

func TestDense_BackwardSGD(t *testing.T) {
	d := newDense(t, [][]float64{{1, 2}}, []float64{0}, nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd})

	_, err := d.Forward(mustRows(t, [][]float64{{1, 1}}))
	require.NoError(t, err)

	dInput, err := d.Backward(mustRows(t, [][]float64{{1}}), 0.1)
	require.NoError(t, err)

	// dInput = Wᵀ·dPre with the weights before the update.
	assert.Equal(t, [][]float64{{1, 2}}, dInput.ToRows())
	assert.Equal(t, []float64{1, 1}, d.Weight().Grad().Data())
	assert.Equal(t, []float64{1}, d.Bias().Grad().Data())

	assert.InDeltaSlice(t, []float64{0.9, 1.9}, d.Weight().Value().Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{-0.1}, d.Bias().Value().Data(), 1e-12)
}

func TestDense_BackwardAveragesBatch(t *testing.T) {
	d := newDense(t, [][]float64{{1, 1}}, []float64{0}, nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd})

	_, err := d.Forward(mustRows(t, [][]float64{{1, 0}, {0, 1}}))
	require.NoError(t, err)
	_, err = d.Backward(mustRows(t, [][]float64{{1}, {1}}), 0)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.5}, d.Weight().Grad().Data())
	assert.Equal(t, []float64{1}, d.Bias().Grad().Data())
}

func TestDense_BackwardClip(t *testing.T) {
	tests := []struct {
		name string
		clip float64
		want float64
	}{
		{"disabled", 0, 5},
		{"bound 1", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDense(t, [][]float64{{1}}, []float64{0},
				nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd, Clip: tt.clip})

			_, err := d.Forward(mustRows(t, [][]float64{{1}}))
			require.NoError(t, err)
			_, err = d.Backward(mustRows(t, [][]float64{{5}}), 0)
			require.NoError(t, err)

			assert.Equal(t, tt.want, d.Weight().Grad().At(0, 0))
			assert.Equal(t, tt.want, d.Bias().Grad().At(0, 0))
		})
	}
}

func TestDense_BackwardShapeMismatch(t *testing.T) {
	d, err := nn.NewDense(2, 1, nn.DenseConfig{})
	require.NoError(t, err)

	_, err = d.Forward(mustRows(t, [][]float64{{1, 1}}))
	require.NoError(t, err)

	_, err = d.Backward(mustRows(t, [][]float64{{1, 1}}), 0.1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestDense_AdamStepCounter(t *testing.T) {
	d, err := nn.NewDense(2, 1, nn.DenseConfig{})
	require.NoError(t, err)

	adam, ok := d.Optimizer().(*optim.Adam)
	require.True(t, ok, "default optimizer is Adam")

	x := mustRows(t, [][]float64{{0.5, -0.5}})
	prev1, prev2 := 0.0, 0.0
	for i := 1; i <= 10; i++ {
		out, err := d.Forward(x)
		require.NoError(t, err)
		_, err = d.Backward(out, 0.01)
		require.NoError(t, err)

		assert.Equal(t, i, adam.Timestep())
		bc1, bc2 := adam.BiasCorrection()
		assert.Greater(t, bc1, prev1)
		assert.Greater(t, bc2, prev2)
		assert.Less(t, bc1, 1.0)
		assert.Less(t, bc2, 1.0)
		prev1, prev2 = bc1, bc2
	}
}

func TestRecurrent_Forward(t *testing.T) {
	r, err := nn.NewRecurrent(1, 1, nn.RecurrentConfig{Optimizer: sgd})
	require.NoError(t, err)
	require.NoError(t, r.LoadState(serialization.RecurrentState{
		InputWeights:     [][]float64{{1}},
		RecurrentWeights: [][]float64{{0.5}},
		Biases:           []float64{0},
	}))

	seq := mustRows(t, [][]float64{{1}, {0}})
	out, err := r.Forward(seq)
	require.NoError(t, err)

	h0 := math.Tanh(1)
	h1 := math.Tanh(0.5 * h0)
	assert.InDeltaSlice(t, []float64{h0, h1}, out.Data(), 1e-12)

	// The hidden state restarts from zero on every call.
	again, err := r.Forward(seq)
	require.NoError(t, err)
	assert.True(t, out.Equal(again))
}

func TestRecurrent_Errors(t *testing.T) {
	_, err := nn.NewRecurrent(1, 0, nn.RecurrentConfig{})
	require.ErrorIs(t, err, nn.ErrInvalidSize)

	r, err := nn.NewRecurrent(2, 3, nn.RecurrentConfig{})
	require.NoError(t, err)

	_, err = r.Forward(mustRows(t, [][]float64{{1}}))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = r.Backward(tensor.Zeros(tensor.Shape{Rows: 1, Cols: 3}), 0.1)
	require.ErrorIs(t, err, nn.ErrNoForwardCache)

	_, err = r.Forward(mustRows(t, [][]float64{{1, 2}, {3, 4}}))
	require.NoError(t, err)
	_, err = r.Backward(tensor.Zeros(tensor.Shape{Rows: 1, Cols: 3}), 0.1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

// With one timestep the recurrent term vanishes, so the layer must
// behave exactly like a tanh Dense layer with the same input weights.
func TestRecurrent_SingleStepMatchesDense(t *testing.T) {
	win := [][]float64{{0.2, -0.4}, {0.7, 0.1}, {-0.3, 0.5}}
	bias := []float64{0.05, -0.1, 0.2}

	r, err := nn.NewRecurrent(2, 3, nn.RecurrentConfig{Optimizer: sgd})
	require.NoError(t, err)
	require.NoError(t, r.LoadState(serialization.RecurrentState{
		InputWeights:     win,
		RecurrentWeights: [][]float64{{0.9, 0.1, 0.3}, {-0.2, 0.4, 0.6}, {0.8, -0.5, 0.1}},
		Biases:           bias,
	}))
	d := newDense(t, win, bias, nn.DenseConfig{Activation: nn.Tanh, Optimizer: sgd})

	x := mustRows(t, [][]float64{{0.6, -1.2}})
	dOut := mustRows(t, [][]float64{{0.3, -0.8, 0.5}})

	rOut, err := r.Forward(x)
	require.NoError(t, err)
	dOutput, err := d.Forward(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, dOutput.Data(), rOut.Data(), 1e-12)

	rIn, err := r.Backward(dOut, 0)
	require.NoError(t, err)
	dIn, err := d.Backward(dOut, 0)
	require.NoError(t, err)

	assert.InDeltaSlice(t, dIn.Data(), rIn.Data(), 1e-12)
	assert.InDeltaSlice(t, d.Weight().Grad().Data(), r.InputWeight().Grad().Data(), 1e-12)
	assert.InDeltaSlice(t, d.Bias().Grad().Data(), r.Bias().Grad().Data(), 1e-12)
	assert.Equal(t, make([]float64, 9), r.RecurrentWeight().Grad().Data())
}

// Checks BPTT against central finite differences of f = Σ_t Σ_i c[t][i]·h_t[i].
// Backward stores ∂f/∂θ averaged over T.
func TestRecurrent_GradientCheck(t *testing.T) {
	r, err := nn.NewRecurrent(2, 3, nn.RecurrentConfig{Optimizer: sgd})
	require.NoError(t, err)

	seq := mustRows(t, [][]float64{{0.5, -0.2}, {0.1, 0.4}, {-0.3, 0.8}, {0.9, 0.0}})
	coef := mustRows(t, [][]float64{{0.2, -0.5, 0.1}, {0.7, 0.3, -0.4}, {-0.6, 0.2, 0.5}, {0.1, 0.9, -0.2}})
	params := r.Parameters()
	theta := flatParams(params)

	f := func(x []float64) float64 {
		setParams(params, x)
		out, err := r.Forward(seq)
		require.NoError(t, err)
		var sum float64
		for i, v := range out.Data() {
			sum += coef.Data()[i] * v
		}
		return sum
	}
	numeric := fd.Gradient(nil, f, theta, &fd.Settings{Formula: fd.Central})

	setParams(params, theta)
	_, err = r.Forward(seq)
	require.NoError(t, err)
	dIn, err := r.Backward(coef, 0)
	require.NoError(t, err)

	steps := float64(seq.Rows())
	analytic := flatGrads(params)
	require.Len(t, analytic, len(numeric))
	for i := range numeric {
		assert.InDelta(t, numeric[i]/steps, analytic[i], 1e-6, "parameter %d", i)
	}
	assert.Equal(t, theta, flatParams(params), "lr 0 leaves parameters unchanged")

	// Input gradients are not averaged.
	numericIn := fd.Gradient(nil, func(x []float64) float64 {
		in, err := tensor.FromSlice(seq.Shape(), x)
		require.NoError(t, err)
		out, err := r.Forward(in)
		require.NoError(t, err)
		var sum float64
		for i, v := range out.Data() {
			sum += coef.Data()[i] * v
		}
		return sum
	}, seq.Data(), &fd.Settings{Formula: fd.Central})
	assert.InDeltaSlice(t, numericIn, dIn.Data(), 1e-6)
}

func TestRecurrent_ClipBoundsPreActivationGradient(t *testing.T) {
	r, err := nn.NewRecurrent(1, 1, nn.RecurrentConfig{Optimizer: sgd, Clip: 1})
	require.NoError(t, err)
	require.NoError(t, r.LoadState(serialization.RecurrentState{
		InputWeights:     [][]float64{{0}},
		RecurrentWeights: [][]float64{{0}},
		Biases:           []float64{0},
	}))

	_, err = r.Forward(mustRows(t, [][]float64{{2}}))
	require.NoError(t, err)
	_, err = r.Backward(mustRows(t, [][]float64{{10}}), 0)
	require.NoError(t, err)

	// h = 0 so dPre = 10, clipped to 1.
	assert.Equal(t, 1.0, r.Bias().Grad().At(0, 0))
	assert.Equal(t, 2.0, r.InputWeight().Grad().At(0, 0))
}

func TestMSELoss(t *testing.T) {
	pred := mustRows(t, [][]float64{{1, 2}, {0, 0}})
	target := mustRows(t, [][]float64{{0, 0}, {0, 1}})

	loss, grad, err := nn.MSELoss(pred, target)
	require.NoError(t, err)

	// (1 + 4 + 0 + 1) / 4
	assert.InDelta(t, 1.5, loss, 1e-12)
	// 2·diff / K with K = 2
	assert.Equal(t, [][]float64{{1, 2}, {0, -1}}, grad.ToRows())

	_, _, err = nn.MSELoss(pred, mustRows(t, [][]float64{{0, 0}}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSequential(t *testing.T) {
	first := newDense(t, [][]float64{{1, 0}, {0, 1}}, []float64{0, 0}, nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd})
	second := newDense(t, [][]float64{{2, 3}}, []float64{1}, nn.DenseConfig{Activation: nn.Identity, Optimizer: sgd})

	seq := nn.NewSequential(first)
	seq.Add(second)
	assert.Equal(t, 2, seq.Len())
	assert.Same(t, second, seq.Layer(1))
	assert.Len(t, seq.Parameters(), 4)

	out, err := seq.Forward(mustRows(t, [][]float64{{1, 1}}))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6}}, out.ToRows())

	dIn, err := seq.Backward(mustRows(t, [][]float64{{1}}), 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3}}, dIn.ToRows())

	_, err = seq.Backward(mustRows(t, [][]float64{{1}}), 0)
	assert.ErrorIs(t, err, nn.ErrNoForwardCache)

	assert.Panics(t, func() { seq.Layer(2) })
}

func TestDense_StateRoundTrip(t *testing.T) {
	src, err := nn.NewDense(3, 2, nn.DenseConfig{Activation: nn.Sigmoid})
	require.NoError(t, err)
	dst, err := nn.NewDense(3, 2, nn.DenseConfig{Activation: nn.Sigmoid})
	require.NoError(t, err)

	require.NoError(t, dst.LoadState(src.State()))

	x := mustRows(t, [][]float64{{0.1, 0.2, 0.3}})
	a, err := src.Forward(x)
	require.NoError(t, err)
	b, err := dst.Forward(x)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestLoadState_MismatchLeavesLayerUnchanged(t *testing.T) {
	d, err := nn.NewDense(2, 2, nn.DenseConfig{})
	require.NoError(t, err)
	before := flatParams(d.Parameters())

	err = d.LoadState(serialization.DenseState{
		Weights: [][]float64{{1, 2}, {3, 4}},
		Biases:  []float64{1, 2, 3},
	})
	require.ErrorIs(t, err, serialization.ErrArchitectureMismatch)
	assert.Equal(t, before, flatParams(d.Parameters()))

	r, err := nn.NewRecurrent(1, 2, nn.RecurrentConfig{})
	require.NoError(t, err)
	before = flatParams(r.Parameters())

	err = r.LoadState(serialization.RecurrentState{
		InputWeights:     [][]float64{{1}, {2}},
		RecurrentWeights: [][]float64{{1, 2}, {3}},
		Biases:           []float64{0, 0},
	})
	require.ErrorIs(t, err, serialization.ErrArchitectureMismatch)
	assert.Equal(t, before, flatParams(r.Parameters()))
}
