package nn

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
)

// State returns a copy of the layer's weights and biases.
func (d *Dense) State() serialization.DenseState {
	return serialization.DenseState{
		Weights: d.weight.Value().ToRows(),
		Biases:  append([]float64(nil), d.bias.Value().Data()...),
	}
}

// CheckState reports whether s has this layer's shapes. It never
// modifies the layer.
func (d *Dense) CheckState(s serialization.DenseState) error {
	if err := checkMatrix("weights", s.Weights, d.out, d.in); err != nil {
		return err
	}
	return checkVector("biases", s.Biases, d.out)
}

// LoadState overwrites the layer's parameters with s. On error the layer
// is left unchanged. Optimizer state is not touched.
func (d *Dense) LoadState(s serialization.DenseState) error {
	if err := d.CheckState(s); err != nil {
		return err
	}
	loadMatrix(d.weight.Value(), s.Weights)
	copy(d.bias.Value().Data(), s.Biases)
	return nil
}

// State returns a copy of the layer's weights and biases.
func (r *Recurrent) State() serialization.RecurrentState {
	return serialization.RecurrentState{
		InputWeights:     r.inputWeight.Value().ToRows(),
		RecurrentWeights: r.recurrentWeight.Value().ToRows(),
		Biases:           append([]float64(nil), r.bias.Value().Data()...),
	}
}

// CheckState reports whether s has this layer's shapes. It never
// modifies the layer.
func (r *Recurrent) CheckState(s serialization.RecurrentState) error {
	if err := checkMatrix("inputWeights", s.InputWeights, r.hidden, r.in); err != nil {
		return err
	}
	if err := checkMatrix("recurrentWeights", s.RecurrentWeights, r.hidden, r.hidden); err != nil {
		return err
	}
	return checkVector("biases", s.Biases, r.hidden)
}

// LoadState overwrites the layer's parameters with s. On error the layer
// is left unchanged. Optimizer state is not touched.
func (r *Recurrent) LoadState(s serialization.RecurrentState) error {
	if err := r.CheckState(s); err != nil {
		return err
	}
	loadMatrix(r.inputWeight.Value(), s.InputWeights)
	loadMatrix(r.recurrentWeight.Value(), s.RecurrentWeights)
	copy(r.bias.Value().Data(), s.Biases)
	return nil
}

func checkMatrix(field string, m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("%w: %s has %d rows, want %d",
			serialization.ErrArchitectureMismatch, field, len(m), rows)
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d",
				serialization.ErrArchitectureMismatch, field, i, len(row), cols)
		}
	}
	return nil
}

func checkVector(field string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%w: %s has %d values, want %d",
			serialization.ErrArchitectureMismatch, field, len(v), n)
	}
	return nil
}

func loadMatrix(dst *tensor.Tensor, m [][]float64) {
	for i, row := range m {
		copy(dst.Row(i), row)
	}
}
