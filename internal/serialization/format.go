package serialization

// Model type identifiers stored in Snapshot.Type.
const (
	ModelTypeRecurrent = "RNNModel"
	ModelTypeNetwork   = "NeuralNetwork"
)

// Checkpoint is the persisted training snapshot.
type Checkpoint struct {
	BestLoss float64   `json:"bestLoss"` // Lowest epoch loss seen when the snapshot was taken
	Model    *Snapshot `json:"model"`    // Learnable parameters of the model
}

// Snapshot is the externalized parameter set of one model.
//
// Exactly one of the layer groups is populated, selected by Type:
// RNNLayer + DenseLayer for ModelTypeRecurrent, Layers for ModelTypeNetwork.
type Snapshot struct {
	Type         string          `json:"type"`
	Architecture Architecture    `json:"architecture"`
	RNNLayer     *RecurrentState `json:"rnnLayer,omitempty"`
	DenseLayer   *DenseState     `json:"denseLayer,omitempty"`
	Layers       []DenseState    `json:"layers,omitempty"`
}

// Architecture holds the constructor arguments a snapshot was taken from.
//
// Loaders compare it against the live model before touching any weights.
type Architecture struct {
	InputSize  int   `json:"inputSize,omitempty"`
	HiddenSize int   `json:"hiddenSize,omitempty"`
	OutputSize int   `json:"outputSize,omitempty"`
	LayerSizes []int `json:"layerSizes,omitempty"`

	// Activations names each feed-forward layer's nonlinearity ("relu",
	// "sigmoid", ...). Optional; older checkpoints omit it.
	Activations []string `json:"activations,omitempty"`
}

// DenseState holds a dense layer's parameters.
type DenseState struct {
	Weights [][]float64 `json:"weights"` // [outputSize][inputSize]
	Biases  []float64   `json:"biases"`  // [outputSize]
}

// RecurrentState holds a simple recurrent layer's parameters.
type RecurrentState struct {
	InputWeights     [][]float64 `json:"inputWeights"`     // [hiddenSize][inputSize]
	RecurrentWeights [][]float64 `json:"recurrentWeights"` // [hiddenSize][hiddenSize]
	Biases           []float64   `json:"biases"`           // [hiddenSize]
}
