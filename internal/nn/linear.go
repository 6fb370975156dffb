package nn

import (
	"fmt"

	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// Linear implements a fully connected (dense) layer: y = x·W (+ b).
//
// The weight matrix has shape [in_features, out_features] and is
// initialized with He-scaled uniform noise. The optional bias has shape
// [1, out_features], is zero-initialized, and is added with a row
// broadcast over the batch dimension.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *tensor.Tensor // [in_features, out_features]
	bias        *tensor.Tensor // [1, out_features], nil when disabled
}

// NewLinear creates a Linear layer. withBias controls whether a bias row is
// allocated.
func NewLinear(inFeatures, outFeatures int, withBias bool) *Linear {
	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      HeUniform(inFeatures, tensor.Shape{inFeatures, outFeatures}),
	}
	if withBias {
		l.bias = ZerosParam(tensor.Shape{1, outFeatures})
	}
	return l
}

// Forward computes y = x·W (+ b) for input of shape [batch, in_features].
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("nn: Linear.Forward expects 2D input [batch, features], got %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("nn: Linear.Forward expects %d input features, got %d", l.inFeatures, shape[1]))
	}

	output := ops.MatMul(input, l.weight)
	if l.bias != nil {
		output = ops.Add(output, l.bias)
	}
	return output
}

// Parameters returns [weight, bias] when bias is enabled, otherwise [weight].
func (l *Linear) Parameters() []*tensor.Tensor {
	if l.bias != nil {
		return []*tensor.Tensor{l.weight, l.bias}
	}
	return []*tensor.Tensor{l.weight}
}

// Weight returns the weight tensor.
func (l *Linear) Weight() *tensor.Tensor { return l.weight }

// Bias returns the bias tensor, or nil when disabled.
func (l *Linear) Bias() *tensor.Tensor { return l.bias }
