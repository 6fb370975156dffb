package optim

import "github.com/flint-ml/flint/internal/tensor"

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param -= lr * grad
//
// With momentum:
//
//	velocity = momentum * velocity + grad
//	param -= lr * velocity
type SGD struct {
	params     []*tensor.Tensor
	lr         float64
	momentum   float64
	velocities [][]float64 // allocated lazily, only when momentum > 0
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // learning rate (default: 0.01)
	Momentum float64 // momentum factor (default: 0, range [0, 1))
}

// NewSGD creates an SGD optimizer over params. A zero LR falls back to the
// default 0.01.
func NewSGD(params []*tensor.Tensor, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	s := &SGD{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
	if config.Momentum != 0 {
		s.velocities = make([][]float64, len(params))
		for i, p := range params {
			s.velocities[i] = make([]float64, p.NumElements())
		}
	}
	return s
}

// Step applies one descent update to every parameter with a gradient.
func (s *SGD) Step() {
	for i, p := range s.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		data := p.Data()
		if s.momentum == 0 {
			for j := range data {
				data[j] -= s.lr * grad[j]
			}
			continue
		}
		vel := s.velocities[i]
		for j := range data {
			vel[j] = s.momentum*vel[j] + grad[j]
			data[j] -= s.lr * vel[j]
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() { zeroGrads(s.params) }

// LR returns the current learning rate.
func (s *SGD) LR() float64 { return s.lr }

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
