// Package optim implements gradient-based parameter optimizers.
//
// Optimizers hold a non-owning flat list of parameter tensors. Step
// consumes the gradients accumulated by the backward pass and mutates the
// parameter data in place; ZeroGrad resets the gradient buffers and must be
// called before each independent backward pass, or gradients from prior
// passes carry over.
package optim

import "github.com/flint-ml/flint/internal/tensor"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one gradient update to every managed parameter,
	// mutating parameter data in place.
	Step()

	// ZeroGrad fills every managed parameter's gradient buffer with zero.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate; used by schedules.
	SetLR(lr float64)
}

func zeroGrads(params []*tensor.Tensor) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
