package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/tensor"
)

// DenseConfig contains the options of a Dense layer.
type DenseConfig struct {
	Activation Activation       // Nonlinearity (default: ReLU)
	Optimizer  optim.Config     // Update rule (default: Adam)
	Clip       float64          // Bound on pre-activation gradients; 0 disables
	Init       tensor.Generator // Initial weights and biases (default: uniform [-1, 1])
}

// Dense is a fully connected layer: y = activation(W·x + b).
//
// Weight has shape [out, in], bias has shape [1, out]. Each sample of a
// batch is processed independently; gradients are averaged over the batch
// before the optimizer step.
//
// Example:
//
//	layer, err := nn.NewDense(2, 2, nn.DenseConfig{Activation: nn.Sigmoid})
//	out, err := layer.Forward(batch)     // [N, 2]
//	dx, err := layer.Backward(dOut, 0.1) // [N, 2], weights updated
type Dense struct {
	in, out    int
	activation Activation
	clip       float64

	weight *Parameter
	bias   *Parameter
	opt    optim.Optimizer

	// Pending gradient context, valid between Forward and Backward.
	input *tensor.Tensor
	pre   *tensor.Tensor
}

// NewDense creates a Dense layer mapping in features to out features.
func NewDense(in, out int, config DenseConfig) (*Dense, error) {
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("%w: dense %d→%d", ErrInvalidSize, in, out)
	}
	if config.Activation == 0 {
		config.Activation = ReLU
	}
	if !config.Activation.Valid() {
		return nil, fmt.Errorf("nn: invalid activation %v", config.Activation)
	}
	if config.Init == nil {
		config.Init = tensor.Uniform(nil, -1, 1)
	}

	d := &Dense{
		in:         in,
		out:        out,
		activation: config.Activation,
		clip:       config.Clip,
		weight:     NewParameter("weight", tensor.Generate(tensor.Shape{Rows: out, Cols: in}, config.Init)),
		bias:       NewParameter("bias", tensor.Generate(tensor.Shape{Rows: 1, Cols: out}, config.Init)),
	}

	opt, err := optim.New([]optim.Param{d.weight, d.bias}, config.Optimizer)
	if err != nil {
		return nil, err
	}
	d.opt = opt
	return d, nil
}

// Forward computes activation(W·x + b) for every row of input.
func (d *Dense) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInput("Dense.Forward", input, d.in); err != nil {
		return nil, err
	}

	n := input.Rows()
	pre := tensor.Zeros(tensor.Shape{Rows: n, Cols: d.out})
	bias := d.bias.Value().Data()
	for i := 0; i < n; i++ {
		z, err := tensor.MatVec(d.weight.Value(), input.Row(i))
		if err != nil {
			return nil, err
		}
		floats.AddTo(pre.Row(i), z, bias)
	}

	d.input = input.Clone()
	d.pre = pre
	return tensor.Map(pre, d.activation.Apply), nil
}

// Backward backpropagates dOut through the layer and updates W and b.
//
// Per sample, dPre = dOut ⊙ activation'(pre) (clipped when Clip > 0) is
// accumulated into the weight and bias gradients, and Wᵀ·dPre is returned
// as that sample's input gradient. The input gradient uses the weights as
// they were before this call's update.
func (d *Dense) Backward(dOut *tensor.Tensor, lr float64) (*tensor.Tensor, error) {
	if d.input == nil {
		return nil, ErrNoForwardCache
	}
	if err := checkGrad("Dense.Backward", dOut, d.pre.Shape()); err != nil {
		return nil, err
	}

	input, pre := d.input, d.pre
	d.input, d.pre = nil, nil

	dW, dB := d.weight.Grad(), d.bias.Grad()
	dW.Zero()
	dB.Zero()

	n := input.Rows()
	dInput := tensor.Zeros(input.Shape())
	dPre := make([]float64, d.out)
	for i := 0; i < n; i++ {
		p, g := pre.Row(i), dOut.Row(i)
		for j := range dPre {
			dPre[j] = tensor.Clip(g[j]*d.activation.Derivative(p[j]), d.clip)
		}

		if err := tensor.AddOuter(dW, 1, dPre, input.Row(i)); err != nil {
			return nil, err
		}
		floats.Add(dB.Data(), dPre)

		dx, err := tensor.MatTVec(d.weight.Value(), dPre)
		if err != nil {
			return nil, err
		}
		copy(dInput.Row(i), dx)
	}

	tensor.Scale(dW, 1/float64(n))
	tensor.Scale(dB, 1/float64(n))

	if err := d.opt.Step(lr); err != nil {
		return nil, fmt.Errorf("dense update: %w", err)
	}
	return dInput, nil
}

// Parameters returns [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weight returns the weight parameter [out, in].
func (d *Dense) Weight() *Parameter { return d.weight }

// Bias returns the bias parameter [1, out].
func (d *Dense) Bias() *Parameter { return d.bias }

// Activation returns the layer's nonlinearity.
func (d *Dense) Activation() Activation { return d.activation }

// Optimizer returns the optimizer bound to this layer's parameters.
func (d *Dense) Optimizer() optim.Optimizer { return d.opt }

// InFeatures returns the input width.
func (d *Dense) InFeatures() int { return d.in }

// OutFeatures returns the output width.
func (d *Dense) OutFeatures() int { return d.out }

func (d *Dense) layer() {}
