package train

import "math"

// Schedule returns the learning rate for a zero-based epoch.
type Schedule interface {
	LearningRate(epoch int) float64
}

// Constant is a fixed learning rate.
type Constant float64

// LearningRate returns c for every epoch.
func (c Constant) LearningRate(int) float64 {
	return float64(c)
}

// StepDecay multiplies the learning rate by Factor every Every epochs:
//
//	lr(epoch) = Initial * Factor^(epoch / Every)
//
// Every <= 0 keeps the rate at Initial.
type StepDecay struct {
	Initial float64
	Factor  float64
	Every   int
}

// LearningRate returns the decayed rate for epoch.
func (s StepDecay) LearningRate(epoch int) float64 {
	if s.Every <= 0 {
		return s.Initial
	}
	return s.Initial * math.Pow(s.Factor, float64(epoch/s.Every))
}
