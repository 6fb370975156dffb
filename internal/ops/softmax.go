package ops

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// Softmax applies row-wise softmax to a 2D tensor. Each row is shifted by
// its maximum before exponentiating, which prevents overflow, and
// normalized by the row sum.
//
// The backward rule is intentionally a no-op: Softmax is expected to be the
// final stage before the fused cross-entropy loss, which supplies the
// combined softmax+cross-entropy gradient directly to the logits. Using
// standalone Softmax mid-graph silently drops gradient flow through it.
// This is a documented limitation, not silently safe.
func Softmax(x *tensor.Tensor) *tensor.Tensor {
	if len(x.Shape()) != 2 {
		panic(fmt.Sprintf("ops: Softmax requires a rank-2 operand, got %v", x.Shape()))
	}
	rows, cols := x.Shape()[0], x.Shape()[1]
	xd := x.Data()
	data := make([]float64, len(xd))

	for r := 0; r < rows; r++ {
		row := xd[r*cols : (r+1)*cols]
		out := data[r*cols : (r+1)*cols]
		softmaxRow(row, out)
	}

	res := newResult(data, x.Shape(), x)
	if res.RequiresGrad() {
		res.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{x},
			// No gradient flows through standalone softmax; the fused
			// cross-entropy loss owns the combined gradient.
			Backward: func(upstream []float64) {},
		})
	}
	return res
}

// softmaxRow writes the numerically stabilized softmax of row into out.
// Entries of -Inf (masked positions) map to exactly zero.
func softmaxRow(row, out []float64) {
	maxV := math.Inf(-1)
	for _, v := range row {
		if v > maxV {
			maxV = v
		}
	}
	sum := 0.0
	for i, v := range row {
		e := math.Exp(v - maxV)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
}
