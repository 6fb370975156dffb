// Package gpt assembles the decoder-only transformer language model from
// the nn building blocks: token embedding plus learned positional
// embedding, a stack of pre-norm transformer blocks, a final LayerNorm, and
// a linear head projecting to vocabulary logits.
package gpt

import (
	"fmt"

	"github.com/flint-ml/flint/internal/nn"
	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// Config defines the model architecture.
type Config struct {
	VocabSize int     // token vocabulary size
	SeqLen    int     // maximum context length
	EmbedDim  int     // model width (must be divisible by NumHeads)
	NumHeads  int     // attention heads per block
	NumLayers int     // transformer block count
	NormEps   float64 // LayerNorm variance floor (default: 1e-5)
}

// GPT is a decoder-only transformer language model.
type GPT struct {
	config Config

	tokenEmbed *nn.Embedding // [vocab, embed]
	posEmbed   *nn.Embedding // [seq_len, embed]
	blocks     []*nn.TransformerBlock
	finalNorm  *nn.LayerNorm
	head       *nn.Linear // [embed, vocab]
}

// New builds a model with randomly initialized weights.
func New(config Config) (*GPT, error) {
	if config.VocabSize <= 0 || config.SeqLen <= 0 || config.EmbedDim <= 0 ||
		config.NumHeads <= 0 || config.NumLayers <= 0 {
		return nil, fmt.Errorf("gpt: config fields must be positive: %+v", config)
	}
	if config.EmbedDim%config.NumHeads != 0 {
		return nil, fmt.Errorf("gpt: embed_dim (%d) must be divisible by num_heads (%d)",
			config.EmbedDim, config.NumHeads)
	}
	if config.NormEps == 0 {
		config.NormEps = 1e-5
	}

	m := &GPT{
		config:     config,
		tokenEmbed: nn.NewEmbedding(config.VocabSize, config.EmbedDim),
		posEmbed:   nn.NewEmbedding(config.SeqLen, config.EmbedDim),
		finalNorm:  nn.NewLayerNorm(config.EmbedDim, config.NormEps),
		head:       nn.NewLinear(config.EmbedDim, config.VocabSize, true),
	}
	for i := 0; i < config.NumLayers; i++ {
		m.blocks = append(m.blocks, nn.NewTransformerBlock(config.EmbedDim, config.NumHeads, config.NormEps))
	}
	return m, nil
}

// Forward maps token ids to next-token logits of shape [len(ids), vocab].
// Panics if ids is empty or longer than the configured context length.
func (m *GPT) Forward(ids []int) *tensor.Tensor {
	if len(ids) == 0 {
		panic("gpt: Forward requires at least one token")
	}
	if len(ids) > m.config.SeqLen {
		panic(fmt.Sprintf("gpt: sequence length %d exceeds context length %d", len(ids), m.config.SeqLen))
	}

	x := ops.Add(m.tokenEmbed.Forward(indexTensor(ids)), m.posEmbed.Forward(positions(len(ids))))
	for _, block := range m.blocks {
		x = block.Forward(x)
	}
	return m.head.Forward(m.finalNorm.Forward(x))
}

// Parameters returns every trainable tensor in a stable order: token
// embedding, positional embedding, blocks in sequence, final norm, head.
func (m *GPT) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	params = append(params, m.tokenEmbed.Parameters()...)
	params = append(params, m.posEmbed.Parameters()...)
	for _, block := range m.blocks {
		params = append(params, block.Parameters()...)
	}
	params = append(params, m.finalNorm.Parameters()...)
	params = append(params, m.head.Parameters()...)
	return params
}

// Config returns the architecture the model was built with.
func (m *GPT) Config() Config { return m.config }

// indexTensor packs integer ids into a tensor buffer.
func indexTensor(ids []int) *tensor.Tensor {
	data := make([]float64, len(ids))
	for i, id := range ids {
		data[i] = float64(id)
	}
	t, err := tensor.New(data, tensor.Shape{len(ids)}, false)
	if err != nil {
		panic(fmt.Sprintf("gpt: %v", err))
	}
	return t
}

// positions returns the index tensor [0, 1, ..., n-1].
func positions(n int) *tensor.Tensor {
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	t, err := tensor.New(data, tensor.Shape{n}, false)
	if err != nil {
		panic(fmt.Sprintf("gpt: %v", err))
	}
	return t
}
