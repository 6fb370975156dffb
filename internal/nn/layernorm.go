package nn

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// LayerNorm normalizes each row of a 2D input to zero mean and unit
// variance, then applies a learnable elementwise scale (gamma) and shift
// (beta), both of shape [1, features].
//
//	y = gamma * (x - mean) / sqrt(var + eps) + beta
//
// The backward pass uses the exact layer-norm Jacobian rather than a
// simplified form; for a row with feature count C and d_norm = gamma·dy:
//
//	dx = std_inv/C * (C*d_norm - Σ d_norm - x_norm * Σ(d_norm * x_norm))
type LayerNorm struct {
	gamma    *tensor.Tensor // [1, features]
	beta     *tensor.Tensor // [1, features]
	features int
	eps      float64
}

// NewLayerNorm creates a LayerNorm over the given feature count. Gamma is
// initialized to ones, beta to zeros. eps is the numerical floor added to
// the variance (1e-5 is typical).
func NewLayerNorm(features int, eps float64) *LayerNorm {
	return &LayerNorm{
		gamma:    OnesParam(tensor.Shape{1, features}),
		beta:     ZerosParam(tensor.Shape{1, features}),
		features: features,
		eps:      eps,
	}
}

// Forward normalizes input of shape [rows, features]. Per-row mean,
// variance and normalized values are cached for the backward pass.
func (l *LayerNorm) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != l.features {
		panic(fmt.Sprintf("nn: LayerNorm.Forward expects [rows, %d], got %v", l.features, shape))
	}
	rows, cols := shape[0], shape[1]
	xd := input.Data()
	gd, bd := l.gamma.Data(), l.beta.Data()

	data := make([]float64, len(xd))
	norm := make([]float64, len(xd)) // cached x_norm
	stdInv := make([]float64, rows)  // cached 1/sqrt(var+eps)

	for r := 0; r < rows; r++ {
		row := xd[r*cols : (r+1)*cols]

		mean := 0.0
		for _, v := range row {
			mean += v
		}
		mean /= float64(cols)

		variance := 0.0
		for _, v := range row {
			d := v - mean
			variance += d * d
		}
		variance /= float64(cols)

		inv := 1.0 / math.Sqrt(variance+l.eps)
		stdInv[r] = inv
		for c, v := range row {
			n := (v - mean) * inv
			norm[r*cols+c] = n
			data[r*cols+c] = gd[c]*n + bd[c]
		}
	}

	requiresGrad := input.RequiresGrad() || l.gamma.RequiresGrad() || l.beta.RequiresGrad()
	out, err := tensor.New(data, shape, requiresGrad)
	if err != nil {
		panic(fmt.Sprintf("nn: LayerNorm: %v", err))
	}
	if requiresGrad {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{input, l.gamma, l.beta},
			Backward: func(upstream []float64) {
				gGrad := l.gamma.Grad()
				bGrad := l.beta.Grad()
				xGrad := input.Grad()
				c := float64(cols)

				for r := 0; r < rows; r++ {
					off := r * cols
					up := upstream[off : off+cols]
					xn := norm[off : off+cols]

					if gGrad != nil || bGrad != nil {
						for j := 0; j < cols; j++ {
							if gGrad != nil {
								gGrad[j] += up[j] * xn[j]
							}
							if bGrad != nil {
								bGrad[j] += up[j]
							}
						}
					}

					if xGrad == nil {
						continue
					}
					sumD := 0.0
					sumDN := 0.0
					for j := 0; j < cols; j++ {
						d := gd[j] * up[j]
						sumD += d
						sumDN += d * xn[j]
					}
					for j := 0; j < cols; j++ {
						d := gd[j] * up[j]
						xGrad[off+j] += stdInv[r] / c * (c*d - sumD - xn[j]*sumDN)
					}
				}
			},
		})
	}
	return out
}

// Parameters returns [gamma, beta].
func (l *LayerNorm) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{l.gamma, l.beta}
}

// Gamma returns the scale parameter.
func (l *LayerNorm) Gamma() *tensor.Tensor { return l.gamma }

// Beta returns the shift parameter.
func (l *LayerNorm) Beta() *tensor.Tensor { return l.beta }
