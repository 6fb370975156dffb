package nn

import (
	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// FeedForward is the transformer MLP: an expansion to 4×embed_dim, ReLU,
// and a projection back to embed_dim.
type FeedForward struct {
	expand  *Linear // [embed_dim, 4*embed_dim]
	project *Linear // [4*embed_dim, embed_dim]
}

// NewFeedForward creates the two dense layers with biases.
func NewFeedForward(embedDim int) *FeedForward {
	hidden := 4 * embedDim
	return &FeedForward{
		expand:  NewLinear(embedDim, hidden, true),
		project: NewLinear(hidden, embedDim, true),
	}
}

// Forward computes project(relu(expand(x))).
func (f *FeedForward) Forward(input *tensor.Tensor) *tensor.Tensor {
	return f.project.Forward(ops.ReLU(f.expand.Forward(input)))
}

// Parameters returns the expansion and projection parameters in order.
func (f *FeedForward) Parameters() []*tensor.Tensor {
	params := f.expand.Parameters()
	return append(params, f.project.Parameters()...)
}
