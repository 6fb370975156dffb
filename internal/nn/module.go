// Package nn implements neural network building blocks on top of the
// tensor graph and the ops primitives.
//
// Provided modules:
//   - Linear: fully connected layer with optional bias
//   - ReLU, Sigmoid: stateless activations
//   - Sequential: ordered composition of modules
//   - Embedding: index-to-vector lookup table
//   - LayerNorm: per-row normalization with learnable scale and shift
//   - MultiHeadAttention: causal multi-head self-attention
//   - FeedForward: two-layer MLP with ReLU
//   - TransformerBlock: pre-norm residual attention + feed-forward block
//
// Layers own their parameter tensors; Parameters traverses them recursively
// in a stable order.
package nn

import (
	"github.com/flint-ml/flint/internal/tensor"
)

// Module is the base interface for all neural network components.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module, in a
	// stable order, including nested module parameters. Modules without
	// trainable state return an empty slice.
	Parameters() []*tensor.Tensor
}
