// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the public API for differentiable tensor operations.
//
// Every operation returns a fresh tensor wired into the computation graph
// when any input requires gradients; Tensor.Backward then propagates
// gradients back through the graph. Shape misuse panics, matching the
// fail-fast convention of the nn package.
package ops

import (
	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// Add returns a + b. Shapes must match exactly, or b may be a [1, n] row
// broadcast over a's [m, n] rows.
func Add(a, b *tensor.Tensor) *tensor.Tensor {
	return ops.Add(a, b)
}

// Mul returns a * b elementwise. Shapes must match exactly, or either side
// may be a single-element scalar broadcast over the other.
func Mul(a, b *tensor.Tensor) *tensor.Tensor {
	return ops.Mul(a, b)
}

// Pow returns x raised elementwise to the constant power n.
func Pow(x *tensor.Tensor, n float64) *tensor.Tensor {
	return ops.Pow(x, n)
}

// ReLU returns max(x, 0) elementwise.
func ReLU(x *tensor.Tensor) *tensor.Tensor {
	return ops.ReLU(x)
}

// Sigmoid returns 1/(1+exp(-x)) elementwise.
func Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	return ops.Sigmoid(x)
}

// Sum reduces x to a single-element tensor holding the sum of all elements.
func Sum(x *tensor.Tensor) *tensor.Tensor {
	return ops.Sum(x)
}

// MatMul returns the matrix product of two 2D tensors.
func MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	return ops.MatMul(a, b)
}

// Transpose returns the transpose of a 2D tensor. Non-differentiable.
func Transpose(t *tensor.Tensor) *tensor.Tensor {
	return ops.Transpose(t)
}

// Softmax returns the numerically stable row-wise softmax of a 2D tensor.
// Its backward pass is a no-op; training paths use the fused
// nn.CrossEntropyLoss gradient instead.
func Softmax(x *tensor.Tensor) *tensor.Tensor {
	return ops.Softmax(x)
}
