package nn

import (
	"github.com/flint-ml/flint/internal/tensor"
)

// Sequential chains modules: each module's output becomes the next
// module's input.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(2, 16, true),
//	    nn.NewReLU(),
//	    nn.NewLinear(16, 2, true),
//	)
type Sequential struct {
	modules []Module
}

// NewSequential creates a Sequential container over modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in order.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters concatenates each submodule's parameters in order.
func (s *Sequential) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}
