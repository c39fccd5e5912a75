package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/tensor"
)

// RecurrentConfig contains the options of a Recurrent layer.
type RecurrentConfig struct {
	Optimizer optim.Config     // Update rule (default: Adam)
	Clip      float64          // Bound on pre-activation gradients; 0 disables
	Init      tensor.Generator // Initial weights and biases (default: uniform [-1, 1])
}

// Recurrent is a simple (Elman) recurrent layer with tanh activation.
//
// For a sequence x_0..x_{T-1} (rows of the input):
//
//	h_t = tanh(Win·x_t + Wrec·h_{t-1} + b),  h_{-1} = 0
//
// The hidden state starts from zero on every Forward call and is never
// carried across calls. The output is the T×hidden matrix of all h_t.
//
// Backward runs backpropagation through time: gradients from every
// timestep are accumulated, averaged over T, then applied in one
// optimizer step.
type Recurrent struct {
	in, hidden int
	clip       float64

	inputWeight     *Parameter // [hidden, in]
	recurrentWeight *Parameter // [hidden, hidden]
	bias            *Parameter // [1, hidden]
	opt             optim.Optimizer

	// Pending gradient context. Row t of states is h_t.
	input  *tensor.Tensor
	states *tensor.Tensor
}

// NewRecurrent creates a Recurrent layer with the given input and hidden widths.
func NewRecurrent(in, hidden int, config RecurrentConfig) (*Recurrent, error) {
	if in <= 0 || hidden <= 0 {
		return nil, fmt.Errorf("%w: recurrent %d→%d", ErrInvalidSize, in, hidden)
	}
	if config.Init == nil {
		config.Init = tensor.Uniform(nil, -1, 1)
	}

	r := &Recurrent{
		in:              in,
		hidden:          hidden,
		clip:            config.Clip,
		inputWeight:     NewParameter("inputWeight", tensor.Generate(tensor.Shape{Rows: hidden, Cols: in}, config.Init)),
		recurrentWeight: NewParameter("recurrentWeight", tensor.Generate(tensor.Shape{Rows: hidden, Cols: hidden}, config.Init)),
		bias:            NewParameter("bias", tensor.Generate(tensor.Shape{Rows: 1, Cols: hidden}, config.Init)),
	}

	opt, err := optim.New([]optim.Param{r.inputWeight, r.recurrentWeight, r.bias}, config.Optimizer)
	if err != nil {
		return nil, err
	}
	r.opt = opt
	return r, nil
}

// Forward runs the recurrence over the rows of seq and returns every
// hidden state.
func (r *Recurrent) Forward(seq *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInput("Recurrent.Forward", seq, r.in); err != nil {
		return nil, err
	}

	steps := seq.Rows()
	states := tensor.Zeros(tensor.Shape{Rows: steps, Cols: r.hidden})
	bias := r.bias.Value().Data()
	prev := make([]float64, r.hidden)

	for t := 0; t < steps; t++ {
		pre, err := tensor.MatVec(r.inputWeight.Value(), seq.Row(t))
		if err != nil {
			return nil, err
		}
		rec, err := tensor.MatVec(r.recurrentWeight.Value(), prev)
		if err != nil {
			return nil, err
		}
		floats.Add(pre, rec)
		floats.Add(pre, bias)

		h := states.Row(t)
		for i, v := range pre {
			h[i] = math.Tanh(v)
		}
		prev = h
	}

	r.input = seq.Clone()
	r.states = states
	return states.Clone(), nil
}

// Backward runs backpropagation through time over dOut (one row per
// timestep) and updates all three parameters once.
func (r *Recurrent) Backward(dOut *tensor.Tensor, lr float64) (*tensor.Tensor, error) {
	if r.input == nil {
		return nil, ErrNoForwardCache
	}
	if err := checkGrad("Recurrent.Backward", dOut, r.states.Shape()); err != nil {
		return nil, err
	}

	input, states := r.input, r.states
	r.input, r.states = nil, nil

	dWin, dWrec, dB := r.inputWeight.Grad(), r.recurrentWeight.Grad(), r.bias.Grad()
	dWin.Zero()
	dWrec.Zero()
	dB.Zero()

	steps := input.Rows()
	dInputs := tensor.Zeros(input.Shape())
	dPre := make([]float64, r.hidden)
	dNext := make([]float64, r.hidden) // gradient flowing into h_t from t+1
	zero := make([]float64, r.hidden)  // h_{-1}

	for t := steps - 1; t >= 0; t-- {
		h, g := states.Row(t), dOut.Row(t)
		for i := range dPre {
			dPre[i] = tensor.Clip((g[i]+dNext[i])*(1-h[i]*h[i]), r.clip)
		}

		prev := zero
		if t > 0 {
			prev = states.Row(t - 1)
		}

		floats.Add(dB.Data(), dPre)
		if err := tensor.AddOuter(dWin, 1, dPre, input.Row(t)); err != nil {
			return nil, err
		}
		if err := tensor.AddOuter(dWrec, 1, dPre, prev); err != nil {
			return nil, err
		}

		dx, err := tensor.MatTVec(r.inputWeight.Value(), dPre)
		if err != nil {
			return nil, err
		}
		copy(dInputs.Row(t), dx)

		if dNext, err = tensor.MatTVec(r.recurrentWeight.Value(), dPre); err != nil {
			return nil, err
		}
	}

	scale := 1 / float64(steps)
	tensor.Scale(dWin, scale)
	tensor.Scale(dWrec, scale)
	tensor.Scale(dB, scale)

	if err := r.opt.Step(lr); err != nil {
		return nil, fmt.Errorf("recurrent update: %w", err)
	}
	return dInputs, nil
}

// Parameters returns [inputWeight, recurrentWeight, bias].
func (r *Recurrent) Parameters() []*Parameter {
	return []*Parameter{r.inputWeight, r.recurrentWeight, r.bias}
}

// InputWeight returns the input-to-hidden weight parameter [hidden, in].
func (r *Recurrent) InputWeight() *Parameter { return r.inputWeight }

// RecurrentWeight returns the hidden-to-hidden weight parameter [hidden, hidden].
func (r *Recurrent) RecurrentWeight() *Parameter { return r.recurrentWeight }

// Bias returns the bias parameter [1, hidden].
func (r *Recurrent) Bias() *Parameter { return r.bias }

// Optimizer returns the optimizer bound to this layer's parameters.
func (r *Recurrent) Optimizer() optim.Optimizer { return r.opt }

// InFeatures returns the input width.
func (r *Recurrent) InFeatures() int { return r.in }

// OutFeatures returns the hidden width.
func (r *Recurrent) OutFeatures() int { return r.hidden }

func (r *Recurrent) layer() {}
