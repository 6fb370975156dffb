// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensors in the Flint ML framework.
//
// A Tensor is a flat float64 buffer with a shape and, when requested, a
// gradient buffer and a link into the computation graph built by the ops
// package. Calling Backward on a scalar result runs reverse-mode automatic
// differentiation over that graph.
//
// Example:
//
//	x, _ := tensor.New([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, true)
//	y := ops.Sum(ops.Mul(x, x))
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // [2 4 6 8]
package tensor

import (
	"github.com/flint-ml/flint/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = tensor.Shape

// Tensor is a dense float64 tensor, the framework's only value type.
type Tensor = tensor.Tensor

// Context links a tensor to the operation that produced it; the ops package
// attaches one to every differentiable result.
type Context = tensor.Context

// Sentinel errors.
var (
	ErrShape    = tensor.ErrShape
	ErrBackward = tensor.ErrBackward
)

// Creation functions

// New creates a tensor from a flat buffer and shape. The buffer is copied.
//
// Example:
//
//	x, err := tensor.New([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, true)
func New(data []float64, shape Shape, requiresGrad bool) (*Tensor, error) {
	return tensor.New(data, shape, requiresGrad)
}

// FromNested creates a tensor from nested float64 slices, inferring the
// shape. Ragged nesting is rejected.
//
// Example:
//
//	x, err := tensor.FromNested([][]float64{{1, 2}, {3, 4}}, true)
func FromNested(nested any, requiresGrad bool) (*Tensor, error) {
	return tensor.FromNested(nested, requiresGrad)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, requiresGrad bool) (*Tensor, error) {
	return tensor.Zeros(shape, requiresGrad)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, requiresGrad bool) (*Tensor, error) {
	return tensor.Ones(shape, requiresGrad)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, requiresGrad bool) (*Tensor, error) {
	return tensor.Full(shape, value, requiresGrad)
}

// Scalar creates a non-differentiable single-element tensor.
func Scalar(value float64) *Tensor {
	return tensor.Scalar(value)
}
