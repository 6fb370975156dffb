package ops

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// MatMul performs 2D matrix multiplication: [m, k] x [k, n] -> [m, n].
// Panics unless both operands are rank 2 with matching inner dimensions.
//
// Backward:
//
//	grad_a += upstream · bᵀ
//	grad_b += aᵀ · upstream
func MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	if len(a.Shape()) != 2 || len(b.Shape()) != 2 {
		panic(fmt.Sprintf("ops: MatMul requires rank-2 operands, got %v and %v", a.Shape(), b.Shape()))
	}
	m, k := a.Shape()[0], a.Shape()[1]
	k2, n := b.Shape()[0], b.Shape()[1]
	if k != k2 {
		panic(fmt.Sprintf("ops: MatMul inner dimension mismatch: %v x %v", a.Shape(), b.Shape()))
	}

	ad, bd := a.Data(), b.Data()
	data := matmulData(ad, bd, m, k, n)

	out := newResult(data, tensor.Shape{m, n}, a, b)
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{a, b},
			Backward: func(upstream []float64) {
				// grad_a[i,p] += Σ_j upstream[i,j] * b[p,j]
				if grad := a.Grad(); grad != nil {
					for i := 0; i < m; i++ {
						for p := 0; p < k; p++ {
							sum := 0.0
							for j := 0; j < n; j++ {
								sum += upstream[i*n+j] * bd[p*n+j]
							}
							grad[i*k+p] += sum
						}
					}
				}
				// grad_b[p,j] += Σ_i a[i,p] * upstream[i,j]
				if grad := b.Grad(); grad != nil {
					for p := 0; p < k; p++ {
						for j := 0; j < n; j++ {
							sum := 0.0
							for i := 0; i < m; i++ {
								sum += ad[i*k+p] * upstream[i*n+j]
							}
							grad[p*n+j] += sum
						}
					}
				}
			},
		})
	}
	return out
}

// Transpose returns the 2D transpose of t as a fresh buffer.
//
// It is a non-differentiable helper used inside other operations to
// manipulate shape: the result carries no context and no gradient buffer.
func Transpose(t *tensor.Tensor) *tensor.Tensor {
	if len(t.Shape()) != 2 {
		panic(fmt.Sprintf("ops: Transpose requires a rank-2 operand, got %v", t.Shape()))
	}
	rows, cols := t.Shape()[0], t.Shape()[1]
	td := t.Data()
	data := make([]float64, len(td))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[j*rows+i] = td[i*cols+j]
		}
	}
	out, err := tensor.New(data, tensor.Shape{cols, rows}, false)
	if err != nil {
		panic(fmt.Sprintf("ops: %v", err))
	}
	return out
}

// matmulData computes the row-major product of a [m, k] and b [k, n].
func matmulData(a, b []float64, m, k, n int) []float64 {
	out := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i*n+j] += av * b[p*n+j]
			}
		}
	}
	return out
}
