package nn

import (
	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// ReLU is a stateless module applying max(0, x) elementwise.
type ReLU struct{}

// NewReLU creates a ReLU activation module.
func NewReLU() *ReLU { return &ReLU{} }

// Forward delegates to the ReLU op.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return ops.ReLU(input)
}

// Parameters returns an empty slice: activations have no trainable state.
func (r *ReLU) Parameters() []*tensor.Tensor { return nil }

// Sigmoid is a stateless module applying 1/(1+e^-x) elementwise.
type Sigmoid struct{}

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid() *Sigmoid { return &Sigmoid{} }

// Forward delegates to the Sigmoid op.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	return ops.Sigmoid(input)
}

// Parameters returns an empty slice: activations have no trainable state.
func (s *Sigmoid) Parameters() []*tensor.Tensor { return nil }
