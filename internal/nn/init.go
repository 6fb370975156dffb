package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/flint-ml/flint/internal/tensor"
)

// HeUniform initializes a trainable tensor with He-scaled uniform noise:
// U(-1, 1) * sqrt(2 / fan_in). Used for dense and attention projections.
func HeUniform(fanIn int, shape tensor.Shape) *tensor.Tensor {
	scale := math.Sqrt(2.0 / float64(fanIn))
	data := make([]float64, shape.NumElements())
	for i := range data {
		//nolint:gosec // math/rand is appropriate for weight initialization
		data[i] = (rand.Float64()*2 - 1) * scale
	}
	return mustNew(data, shape)
}

// Uniform initializes a trainable tensor with U(lo, hi) noise. Used for
// embedding tables (lo=-1, hi=1).
func Uniform(lo, hi float64, shape tensor.Shape) *tensor.Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		//nolint:gosec // math/rand is appropriate for weight initialization
		data[i] = lo + rand.Float64()*(hi-lo)
	}
	return mustNew(data, shape)
}

// ZerosParam creates a zero-initialized trainable tensor. Used for biases
// and LayerNorm shift.
func ZerosParam(shape tensor.Shape) *tensor.Tensor {
	return mustNew(make([]float64, shape.NumElements()), shape)
}

// OnesParam creates a one-initialized trainable tensor. Used for LayerNorm
// scale.
func OnesParam(shape tensor.Shape) *tensor.Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = 1
	}
	return mustNew(data, shape)
}

func mustNew(data []float64, shape tensor.Shape) *tensor.Tensor {
	t, err := tensor.New(data, shape, true)
	if err != nil {
		panic(fmt.Sprintf("nn: parameter init: %v", err))
	}
	return t
}
