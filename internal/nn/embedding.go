package nn

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Embedding is a lookup table mapping integer indices to dense vectors.
//
// The weight matrix has shape [num_embeddings, embed_dim] and is
// initialized with uniform noise in [-1, 1]. Forward gathers one weight row
// per index; backward scatter-adds the upstream gradient into the selected
// rows, so an index appearing multiple times accumulates every
// contribution.
type Embedding struct {
	weight   *tensor.Tensor // [num_embeddings, embed_dim]
	numEmbed int
	embedDim int
}

// NewEmbedding creates an Embedding layer with U(-1, 1) weights.
func NewEmbedding(numEmbeddings, embedDim int) *Embedding {
	return &Embedding{
		weight:   Uniform(-1, 1, tensor.Shape{numEmbeddings, embedDim}),
		numEmbed: numEmbeddings,
		embedDim: embedDim,
	}
}

// Forward gathers weight rows for an integer-index tensor of any shape,
// producing a tensor of shape [flattened_count, embed_dim]. Index values
// are truncated to integers and must lie in [0, num_embeddings).
func (e *Embedding) Forward(indices *tensor.Tensor) *tensor.Tensor {
	idx := indices.Data()
	count := len(idx)
	wd := e.weight.Data()

	rows := make([]int, count)
	data := make([]float64, count*e.embedDim)
	for i, v := range idx {
		row := int(v)
		if row < 0 || row >= e.numEmbed {
			panic(fmt.Sprintf("nn: Embedding index %d out of range [0, %d)", row, e.numEmbed))
		}
		rows[i] = row
		copy(data[i*e.embedDim:(i+1)*e.embedDim], wd[row*e.embedDim:(row+1)*e.embedDim])
	}

	out, err := tensor.New(data, tensor.Shape{count, e.embedDim}, e.weight.RequiresGrad())
	if err != nil {
		panic(fmt.Sprintf("nn: Embedding: %v", err))
	}
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{e.weight},
			Backward: func(upstream []float64) {
				grad := e.weight.Grad()
				if grad == nil {
					return
				}
				for i, row := range rows {
					for j := 0; j < e.embedDim; j++ {
						grad[row*e.embedDim+j] += upstream[i*e.embedDim+j]
					}
				}
			},
		})
	}
	return out
}

// Parameters returns the embedding weight.
func (e *Embedding) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{e.weight}
}

// Weight returns the embedding matrix.
func (e *Embedding) Weight() *tensor.Tensor { return e.weight }
