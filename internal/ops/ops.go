// Package ops implements the differentiable tensor primitives.
//
// Each operation is a pure graph-building function: it computes the forward
// value eagerly, constructs the result tensor, and, when any input requires
// gradients, attaches a Context recording the inputs and a closure that
// accumulates the local gradients given the result's upstream gradient.
//
// Shape violations panic with a descriptive message; they indicate a
// programming error at the call site, not a recoverable condition.
package ops

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// newResult builds the output tensor of an operation. It requires gradients
// exactly when any input does.
func newResult(data []float64, shape tensor.Shape, inputs ...*tensor.Tensor) *tensor.Tensor {
	requiresGrad := false
	for _, in := range inputs {
		if in.RequiresGrad() {
			requiresGrad = true
			break
		}
	}
	t, err := tensor.New(data, shape, requiresGrad)
	if err != nil {
		panic(fmt.Sprintf("ops: %v", err))
	}
	return t
}

// Add performs elementwise addition when shapes are equal, or row-broadcast
// addition when b is a single row [1, n] matching a's trailing dimension
// (the bias-broadcast case). Any other shape combination panics.
//
// Backward: the elementwise operand receives the upstream gradient
// unchanged; the broadcast operand receives the column-wise sum of the
// upstream over the broadcast axis.
func Add(a, b *tensor.Tensor) *tensor.Tensor {
	switch {
	case a.Shape().Equal(b.Shape()):
		return addElementwise(a, b)
	case len(a.Shape()) == 2 && len(b.Shape()) == 2 &&
		b.Shape()[0] == 1 && b.Shape()[1] == a.Shape()[1]:
		return addBroadcastRow(a, b)
	default:
		panic(fmt.Sprintf("ops: Add shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}
}

func addElementwise(a, b *tensor.Tensor) *tensor.Tensor {
	ad, bd := a.Data(), b.Data()
	data := make([]float64, len(ad))
	for i := range data {
		data[i] = ad[i] + bd[i]
	}
	out := newResult(data, a.Shape(), a, b)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{a, b},
			Backward: func(upstream []float64) {
				if grad := a.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += upstream[i]
					}
				}
				if grad := b.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += upstream[i]
					}
				}
			},
		})
	}
	return out
}

func addBroadcastRow(a, b *tensor.Tensor) *tensor.Tensor {
	rows, cols := a.Shape()[0], a.Shape()[1]
	ad, bd := a.Data(), b.Data()
	data := make([]float64, len(ad))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data[r*cols+c] = ad[r*cols+c] + bd[c]
		}
	}
	out := newResult(data, a.Shape(), a, b)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{a, b},
			Backward: func(upstream []float64) {
				if grad := a.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += upstream[i]
					}
				}
				if grad := b.Grad(); grad != nil {
					for r := 0; r < rows; r++ {
						for c := 0; c < cols; c++ {
							grad[c] += upstream[r*cols+c]
						}
					}
				}
			},
		})
	}
	return out
}

// Mul performs elementwise multiplication when shapes are equal, or scalar
// broadcast when either operand has exactly one element. Any other shape
// combination panics.
func Mul(a, b *tensor.Tensor) *tensor.Tensor {
	switch {
	case a.Shape().Equal(b.Shape()):
		return mulElementwise(a, b)
	case b.NumElements() == 1:
		return mulScalar(a, b)
	case a.NumElements() == 1:
		return mulScalar(b, a)
	default:
		panic(fmt.Sprintf("ops: Mul shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}
}

func mulElementwise(a, b *tensor.Tensor) *tensor.Tensor {
	ad, bd := a.Data(), b.Data()
	data := make([]float64, len(ad))
	for i := range data {
		data[i] = ad[i] * bd[i]
	}
	out := newResult(data, a.Shape(), a, b)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{a, b},
			Backward: func(upstream []float64) {
				if grad := a.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += bd[i] * upstream[i]
					}
				}
				if grad := b.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += ad[i] * upstream[i]
					}
				}
			},
		})
	}
	return out
}

// mulScalar multiplies tensor t by 1-element tensor s.
func mulScalar(t, s *tensor.Tensor) *tensor.Tensor {
	td := t.Data()
	sv := s.Data()[0]
	data := make([]float64, len(td))
	for i := range data {
		data[i] = td[i] * sv
	}
	out := newResult(data, t.Shape(), t, s)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{t, s},
			Backward: func(upstream []float64) {
				if grad := t.Grad(); grad != nil {
					for i := range upstream {
						grad[i] += sv * upstream[i]
					}
				}
				if grad := s.Grad(); grad != nil {
					sum := 0.0
					for i := range upstream {
						sum += td[i] * upstream[i]
					}
					grad[0] += sum
				}
			},
		})
	}
	return out
}

// Pow raises every element of x to the power n.
//
// Backward: grad += n * x^(n-1) * upstream.
func Pow(x *tensor.Tensor, n float64) *tensor.Tensor {
	xd := x.Data()
	data := make([]float64, len(xd))
	for i := range data {
		data[i] = math.Pow(xd[i], n)
	}
	out := newResult(data, x.Shape(), x)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{x},
			Backward: func(upstream []float64) {
				grad := x.Grad()
				if grad == nil {
					return
				}
				for i := range upstream {
					grad[i] += n * math.Pow(xd[i], n-1) * upstream[i]
				}
			},
		})
	}
	return out
}

// ReLU applies max(0, x) elementwise.
func ReLU(x *tensor.Tensor) *tensor.Tensor {
	xd := x.Data()
	data := make([]float64, len(xd))
	for i, v := range xd {
		if v > 0 {
			data[i] = v
		}
	}
	out := newResult(data, x.Shape(), x)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{x},
			Backward: func(upstream []float64) {
				grad := x.Grad()
				if grad == nil {
					return
				}
				for i := range upstream {
					if xd[i] > 0 {
						grad[i] += upstream[i]
					}
				}
			},
		})
	}
	return out
}

// Sigmoid applies 1/(1+e^-x) elementwise.
//
// Backward uses the forward output: grad += s*(1-s)*upstream.
func Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	xd := x.Data()
	data := make([]float64, len(xd))
	for i, v := range xd {
		data[i] = 1.0 / (1.0 + math.Exp(-v))
	}
	out := newResult(data, x.Shape(), x)
	if out.RequiresGrad() {
		s := out.Data()
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{x},
			Backward: func(upstream []float64) {
				grad := x.Grad()
				if grad == nil {
					return
				}
				for i := range upstream {
					grad[i] += s[i] * (1 - s[i]) * upstream[i]
				}
			},
		})
	}
	return out
}

// Sum reduces x to a 1-element tensor.
//
// Backward broadcasts the upstream scalar to every element.
func Sum(x *tensor.Tensor) *tensor.Tensor {
	xd := x.Data()
	total := 0.0
	for _, v := range xd {
		total += v
	}
	out := newResult([]float64{total}, tensor.Shape{1}, x)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{x},
			Backward: func(upstream []float64) {
				grad := x.Grad()
				if grad == nil {
					return
				}
				for i := range grad {
					grad[i] += upstream[0]
				}
			},
		})
	}
	return out
}
