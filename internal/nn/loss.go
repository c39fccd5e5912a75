package nn

import (
	"github.com/born-ml/seqnet/internal/tensor"
)

// MSELoss computes the mean squared error between pred and target and the
// gradient to feed into the output layer's Backward.
//
//	loss = mean over samples i and outputs j of (pred[i][j] - target[i][j])²
//
// The returned gradient row i is 2·(pred[i] - target[i]) / K for K outputs.
// Layers average their parameter gradients over the N samples, so the
// applied update is exactly ∂loss/∂param.
func MSELoss(pred, target *tensor.Tensor) (float64, *tensor.Tensor, error) {
	if err := checkGrad("MSELoss", target, pred.Shape()); err != nil {
		return 0, nil, err
	}

	k := float64(pred.Cols())
	grad := tensor.Zeros(pred.Shape())
	g, p, t := grad.Data(), pred.Data(), target.Data()

	var sum float64
	for i := range p {
		diff := p[i] - t[i]
		sum += diff * diff
		g[i] = 2 * diff / k
	}
	return sum / float64(len(p)), grad, nil
}
