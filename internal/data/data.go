// Package data provides the synthetic datasets used to train seqnet models.
package data

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSize is returned when a dataset is requested with an unusable size.
var ErrInvalidSize = errors.New("data: invalid size")

// RampStep is the increment between consecutive values of a ramp sequence.
const RampStep = 0.1

// Sample is one training example: a batch (or sequence) of input vectors
// and the matching target vectors.
type Sample struct {
	Input  [][]float64
	Target [][]float64
}

// XOR returns the four XOR truth-table rows as single-row samples.
func XOR() []Sample {
	b := XORBatch()
	samples := make([]Sample, len(b.Input))
	for i := range b.Input {
		samples[i] = Sample{
			Input:  [][]float64{b.Input[i]},
			Target: [][]float64{b.Target[i]},
		}
	}
	return samples
}

// XORBatch returns the XOR truth table as one 4-row batch.
func XORBatch() Sample {
	return Sample{
		Input:  [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		Target: [][]float64{{0}, {1}, {1}, {0}},
	}
}

// Ramp generates n next-value prediction samples of length steps.
//
// Each sample starts at a value drawn uniformly from [0, 1); input t is
// start + t·RampStep and target t is the following value,
// start + (t+1)·RampStep. A nil rng uses the global source.
// n must be non-negative and steps at least 1.
func Ramp(rng *rand.Rand, n, steps int) ([]Sample, error) {
	if n < 0 || steps < 1 {
		return nil, fmt.Errorf("%w: %d samples of %d steps", ErrInvalidSize, n, steps)
	}

	float := rand.Float64 //nolint:gosec // G404: synthetic training data, not security sensitive
	if rng != nil {
		float = rng.Float64
	}

	samples := make([]Sample, n)
	for i := range samples {
		start := float()
		samples[i] = Sample{
			Input:  RampSequence(start, steps),
			Target: RampSequence(start+RampStep, steps),
		}
	}
	return samples, nil
}

// RampSequence returns steps single-value vectors start, start+RampStep, ...
func RampSequence(start float64, steps int) [][]float64 {
	seq := make([][]float64, steps)
	for t := range seq {
		seq[t] = []float64{start + float64(t)*RampStep}
	}
	return seq
}
