// Package serialization persists trained model parameters and the
// tokenizer vocabulary to durable storage.
//
// The .flint container is a magic tag and version, a length-prefixed JSON
// header describing the model architecture, the vocabulary and every
// tensor's shape, followed by the raw little-endian float64 parameter
// payloads. Tensors are written in the exact order the model's
// Parameters() traversal yields, which is the stable order Load restores
// them in.
package serialization

import "github.com/flint-ml/flint/internal/tensor"

// Container constants.
const (
	// Magic identifies a .flint checkpoint file.
	Magic = "FLNT"

	// FormatVersion is the current container version.
	FormatVersion = 1
)

// ModelMeta records the architecture needed to rebuild the model before
// loading its weights.
type ModelMeta struct {
	VocabSize int `json:"vocab_size"`
	SeqLen    int `json:"seq_len"`
	EmbedDim  int `json:"embed_dim"`
	NumHeads  int `json:"num_heads"`
	NumLayers int `json:"num_layers"`
}

// TensorMeta describes one parameter tensor in the payload.
type TensorMeta struct {
	Shape       []int `json:"shape"`
	NumElements int   `json:"num_elements"`
}

// Header is the JSON header of a .flint file.
type Header struct {
	FormatVersion int          `json:"format_version"`
	Model         ModelMeta    `json:"model"`
	Vocab         string       `json:"vocab"`
	Tensors       []TensorMeta `json:"tensors"`
}

// Checkpoint is a fully read .flint file: architecture, vocabulary and the
// parameter payloads, in Parameters() order.
type Checkpoint struct {
	Meta    ModelMeta
	Vocab   string
	Shapes  []tensor.Shape
	Tensors [][]float64
}
