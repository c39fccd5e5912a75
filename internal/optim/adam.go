package optim

import (
	"math"

	"github.com/born-ml/seqnet/internal/tensor"
)

// Default Adam hyperparameters.
const (
	DefaultBeta1   = 0.9
	DefaultBeta2   = 0.999
	DefaultEpsilon = 1e-8
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// One Adam instance serves one layer. Its step counter t is shared by all of
// that layer's parameter tensors so their bias corrections stay in lockstep.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []Param
	beta1  float64
	beta2  float64
	eps    float64
	t      int              // Timestep for bias correction
	m      []*tensor.Tensor // First moment estimates, one per param
	v      []*tensor.Tensor // Second moment estimates, one per param
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Moment tensors are allocated here, zero-filled and shaped like their
// parameters. They are never reset; build a new layer to start over.
func NewAdam(params []Param, config AdamConfig) *Adam {
	// Set defaults
	if config.Betas[0] == 0 {
		config.Betas[0] = DefaultBeta1
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = DefaultBeta2
	}
	if config.Eps == 0 {
		config.Eps = DefaultEpsilon
	}

	m := make([]*tensor.Tensor, len(params))
	v := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		m[i] = tensor.Zeros(p.Value().Shape())
		v[i] = tensor.Zeros(p.Value().Shape())
	}

	return &Adam{
		params: params,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      m,
		v:      v,
	}
}

// Step performs a single optimization step using Adam algorithm.
//
// Applies Adam update to all parameters:
//  1. Increment the shared timestep
//  2. Update biased first and second moment estimates
//  3. Compute bias-corrected moment estimates
//  4. Update parameters
func (a *Adam) Step(lr float64) error {
	if err := checkGradients(a.params); err != nil {
		return err
	}

	a.t++
	bc1, bc2 := a.BiasCorrection()

	for i, p := range a.params {
		a.updateParameter(p, a.m[i], a.v[i], lr, bc1, bc2)
	}
	return nil
}

// updateParameter performs Adam update for a single parameter.
func (a *Adam) updateParameter(p Param, m, v *tensor.Tensor, lr, bc1, bc2 float64) {
	gradData := p.Grad().Data()
	mData := m.Data()
	vData := v.Data()
	paramData := p.Value().Data()

	for i := range paramData {
		g := gradData[i]

		mData[i] = a.beta1*mData[i] + (1-a.beta1)*g
		vData[i] = a.beta2*vData[i] + (1-a.beta2)*g*g

		mHat := mData[i] / bc1
		vHat := vData[i] / bc2

		paramData[i] -= lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
}

// Kind returns KindAdam.
func (a *Adam) Kind() Kind {
	return KindAdam
}

// Timestep returns the number of completed Step calls.
func (a *Adam) Timestep() int {
	return a.t
}

// BiasCorrection returns the current denominators (1-beta1^t, 1-beta2^t).
//
// Both are 0 before the first step and increase strictly toward 1.
func (a *Adam) BiasCorrection() (bc1, bc2 float64) {
	bc1 = 1 - math.Pow(a.beta1, float64(a.t))
	bc2 = 1 - math.Pow(a.beta2, float64(a.t))
	return bc1, bc2
}

// Moments returns the first and second moment tensors for parameter i.
//
// Useful for monitoring optimizer state.
func (a *Adam) Moments(i int) (m, v *tensor.Tensor) {
	return a.m[i], a.v[i]
}
