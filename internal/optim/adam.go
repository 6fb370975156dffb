package optim

import (
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Per parameter it maintains exponential moving averages of the gradient
// (first moment m) and the squared gradient (second moment v), both
// allocated at construction, and applies bias correction to compensate for
// their zero initialization:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	m_hat = m / (1 - beta1^t)
//	v_hat = v / (1 - beta2^t)
//	param -= lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	params []*tensor.Tensor
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int // timestep for bias correction
	m      [][]float64
	v      [][]float64
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // learning rate (default: 0.001)
	Betas [2]float64 // moment decay coefficients (default: [0.9, 0.999])
	Eps   float64    // denominator floor (default: 1e-8)
}

// NewAdam creates an Adam optimizer over params, filling unset config
// fields with the defaults above. Moment buffers are allocated here, once,
// matching each parameter's shape.
func NewAdam(params []*tensor.Tensor, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	a := &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make([][]float64, len(params)),
		v:      make([][]float64, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float64, p.NumElements())
		a.v[i] = make([]float64, p.NumElements())
	}
	return a
}

// Step performs a single Adam update over every parameter with a gradient.
func (a *Adam) Step() {
	a.t++
	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for i, p := range a.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		data := p.Data()
		m, v := a.m[i], a.v[i]
		for j := range data {
			g := grad[j]
			m[j] = a.beta1*m[j] + (1-a.beta1)*g
			v[j] = a.beta2*v[j] + (1-a.beta2)*g*g

			mHat := m[j] / biasCorrection1
			vHat := v[j] / biasCorrection2

			data[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() { zeroGrads(a.params) }

// LR returns the current learning rate.
func (a *Adam) LR() float64 { return a.lr }

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) { a.lr = lr }

// Timestep returns the number of steps taken so far.
func (a *Adam) Timestep() int { return a.t }

// Moments returns the first and second moment buffers of parameter index i.
// Exposed for inspection in tests and checkpoint tooling.
func (a *Adam) Moments(i int) (m, v []float64) { return a.m[i], a.v[i] }
