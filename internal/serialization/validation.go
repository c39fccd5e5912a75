package serialization

import (
	"fmt"
)

// MaxCheckpointSize bounds how many bytes ReadCheckpoint will accept.
const MaxCheckpointSize = 64 * 1024 * 1024 // 64MB

// ValidateSnapshot checks a snapshot's structure: known type, the layer
// group that type requires, and rectangular weight matrices.
//
// It does not compare against a live model; Load does that.
func ValidateSnapshot(s *Snapshot) error {
	if s == nil {
		return ErrMissingModel
	}

	switch s.Type {
	case ModelTypeRecurrent:
		if s.RNNLayer == nil {
			return missingLayer("rnnLayer")
		}
		if s.DenseLayer == nil {
			return missingLayer("denseLayer")
		}
		if err := validateMatrix("rnnLayer.inputWeights", s.RNNLayer.InputWeights); err != nil {
			return err
		}
		if err := validateMatrix("rnnLayer.recurrentWeights", s.RNNLayer.RecurrentWeights); err != nil {
			return err
		}
		return validateMatrix("denseLayer.weights", s.DenseLayer.Weights)

	case ModelTypeNetwork:
		if len(s.Layers) == 0 {
			return missingLayer("layers")
		}
		for i, l := range s.Layers {
			if err := validateMatrix(fmt.Sprintf("layers[%d].weights", i), l.Weights); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownModelType, s.Type)
	}
}

// validateMatrix rejects ragged nested arrays.
func validateMatrix(field string, m [][]float64) error {
	for i, row := range m {
		if len(row) != len(m[0]) {
			return &ValidationError{
				Type:    "ragged_matrix",
				Field:   field,
				Details: fmt.Sprintf("row %d has %d columns, row 0 has %d", i, len(row), len(m[0])),
				Err:     ErrRaggedMatrix,
			}
		}
	}
	return nil
}

func missingLayer(field string) error {
	return &ValidationError{
		Type:    "missing_layer",
		Field:   field,
		Details: "required by model type",
		Err:     ErrArchitectureMismatch,
	}
}
