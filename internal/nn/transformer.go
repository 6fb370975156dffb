package nn

import (
	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// TransformerBlock is a pre-normalization residual block:
//
//	x1 = x  + Attention(LayerNorm(x))
//	x2 = x1 + FeedForward(LayerNorm(x1))
//
// The two LayerNorm instances are independent; no parameters are shared.
type TransformerBlock struct {
	attnNorm  *LayerNorm
	attention *MultiHeadAttention
	ffnNorm   *LayerNorm
	ffn       *FeedForward
}

// NewTransformerBlock creates a block for embedDim-wide activations with
// numHeads attention heads. eps is the LayerNorm variance floor.
func NewTransformerBlock(embedDim, numHeads int, eps float64) *TransformerBlock {
	return &TransformerBlock{
		attnNorm:  NewLayerNorm(embedDim, eps),
		attention: NewMultiHeadAttention(embedDim, numHeads),
		ffnNorm:   NewLayerNorm(embedDim, eps),
		ffn:       NewFeedForward(embedDim),
	}
}

// Forward applies the two residual sub-blocks to input [seq, embed_dim].
func (b *TransformerBlock) Forward(input *tensor.Tensor) *tensor.Tensor {
	x1 := ops.Add(input, b.attention.Forward(b.attnNorm.Forward(input)))
	x2 := ops.Add(x1, b.ffn.Forward(b.ffnNorm.Forward(x1)))
	return x2
}

// Parameters returns the block's parameters: attention norm, attention
// projections, FFN norm, FFN layers, in that order.
func (b *TransformerBlock) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	params = append(params, b.attnNorm.Parameters()...)
	params = append(params, b.attention.Parameters()...)
	params = append(params, b.ffnNorm.Parameters()...)
	params = append(params, b.ffn.Parameters()...)
	return params
}

// Attention exposes the block's attention layer.
func (b *TransformerBlock) Attention() *MultiHeadAttention { return b.attention }
