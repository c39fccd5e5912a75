// Package serialization defines the seqnet checkpoint format and its JSON
// file persistence.
//
// A checkpoint holds exactly the learnable parameters of a model (weights
// and biases as nested numeric arrays) plus best-loss bookkeeping. Optimizer
// moments and forward caches are never persisted.
//
//	Format Structure (recurrent model):
//	  {
//	    "bestLoss": 0.0012,
//	    "model": {
//	      "type": "RNNModel",
//	      "architecture": {"inputSize": 1, "hiddenSize": 20, "outputSize": 1},
//	      "rnnLayer":   {"inputWeights": [[...]], "recurrentWeights": [[...]], "biases": [...]},
//	      "denseLayer": {"weights": [[...]], "biases": [...]}
//	    }
//	  }
//
// Feed-forward networks use type "NeuralNetwork", an architecture of
// "layerSizes" and a "layers" array of {"weights", "biases"} objects.
//
// Example usage:
//
//	// Save
//	ckpt := &serialization.Checkpoint{BestLoss: loss, Model: m.Serialize()}
//	if err := serialization.WriteCheckpoint("best_model.json", ckpt); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load
//	ckpt, err := serialization.ReadCheckpoint("best_model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = m.Load(ckpt.Model)
package serialization
