// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network layers.
package nn

import (
	"github.com/flint-ml/flint/internal/nn"
	"github.com/flint-ml/flint/internal/tensor"
)

// Module is the common interface for all neural network layers.
type Module = nn.Module

// Layers

// Linear is a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a linear layer with He-uniform initialized weights.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, true)
func NewLinear(inFeatures, outFeatures int, withBias bool) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, withBias)
}

// Embedding is a learned lookup table from integer ids to vectors.
type Embedding = nn.Embedding

// NewEmbedding creates an embedding table of numEmbeddings rows.
func NewEmbedding(numEmbeddings, embedDim int) *Embedding {
	return nn.NewEmbedding(numEmbeddings, embedDim)
}

// LayerNorm normalizes each row to zero mean and unit variance, then applies
// a learned affine transform.
type LayerNorm = nn.LayerNorm

// NewLayerNorm creates a layer norm over rows of the given width.
func NewLayerNorm(features int, eps float64) *LayerNorm {
	return nn.NewLayerNorm(features, eps)
}

// MultiHeadAttention is causal multi-head self-attention.
type MultiHeadAttention = nn.MultiHeadAttention

// NewMultiHeadAttention creates an attention layer. embedDim must be
// divisible by numHeads.
func NewMultiHeadAttention(embedDim, numHeads int) *MultiHeadAttention {
	return nn.NewMultiHeadAttention(embedDim, numHeads)
}

// FeedForward is the transformer position-wise MLP with 4x expansion.
type FeedForward = nn.FeedForward

// NewFeedForward creates a feed-forward block for the given model width.
func NewFeedForward(embedDim int) *FeedForward {
	return nn.NewFeedForward(embedDim)
}

// TransformerBlock is a pre-norm transformer decoder block.
type TransformerBlock = nn.TransformerBlock

// NewTransformerBlock creates one attention + feed-forward block.
func NewTransformerBlock(embedDim, numHeads int, eps float64) *TransformerBlock {
	return nn.NewTransformerBlock(embedDim, numHeads, eps)
}

// Activations

// ReLU is the rectified linear unit activation layer.
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation layer.
func NewReLU() *ReLU { return nn.NewReLU() }

// Sigmoid is the logistic activation layer.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a sigmoid activation layer.
func NewSigmoid() *Sigmoid { return nn.NewSigmoid() }

// Containers

// Sequential chains modules, feeding each one's output to the next.
type Sequential = nn.Sequential

// NewSequential creates a sequential container.
//
// Example:
//
//	model := nn.NewSequential(
//		nn.NewLinear(2, 8, true),
//		nn.NewReLU(),
//		nn.NewLinear(8, 1, true),
//	)
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Losses

// CrossEntropyLoss computes the fused softmax + cross-entropy loss over
// [N, vocab] logits and N integer targets, returning a scalar tensor whose
// backward pass applies the combined (softmax - onehot)/N gradient.
func CrossEntropyLoss(logits, targets *tensor.Tensor) *tensor.Tensor {
	return nn.CrossEntropyLoss(logits, targets)
}
