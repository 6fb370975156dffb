package nn

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// probFloor caps -log(p) when a target probability underflows to zero.
const probFloor = 1e-9

// CrossEntropyLoss computes the fused softmax + cross-entropy loss.
//
// logits has shape [N, vocab_size]; targets is an integer-valued tensor of
// shape [N] with class indices in [0, vocab_size). The loss is the mean
// negative log probability of each row's target class, with each
// probability floored at 1e-9 before the log.
//
// The backward rule bypasses the standalone softmax entirely and applies
// the closed-form combined gradient:
//
//	grad_logits[i,c] += (probs[i,c] - 1[c == target_i]) / N * upstream
func CrossEntropyLoss(logits, targets *tensor.Tensor) *tensor.Tensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("nn: CrossEntropyLoss expects 2D logits [N, vocab], got %v", shape))
	}
	n, vocab := shape[0], shape[1]
	if targets.NumElements() != n {
		panic(fmt.Sprintf("nn: CrossEntropyLoss expects %d targets, got %d", n, targets.NumElements()))
	}

	ld := logits.Data()
	td := targets.Data()

	probs := make([]float64, len(ld))
	classes := make([]int, n)
	total := 0.0
	for i := 0; i < n; i++ {
		row := ld[i*vocab : (i+1)*vocab]
		out := probs[i*vocab : (i+1)*vocab]
		stableSoftmax(row, out)

		c := int(td[i])
		if c < 0 || c >= vocab {
			panic(fmt.Sprintf("nn: CrossEntropyLoss target %d out of range [0, %d)", c, vocab))
		}
		classes[i] = c
		total += -math.Log(math.Max(out[c], probFloor))
	}
	mean := total / float64(n)

	loss, err := tensor.New([]float64{mean}, tensor.Shape{1}, logits.RequiresGrad())
	if err != nil {
		panic(fmt.Sprintf("nn: CrossEntropyLoss: %v", err))
	}
	if loss.RequiresGrad() {
		loss.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{logits},
			Backward: func(upstream []float64) {
				grad := logits.Grad()
				if grad == nil {
					return
				}
				invN := 1.0 / float64(n)
				for i := 0; i < n; i++ {
					for c := 0; c < vocab; c++ {
						g := probs[i*vocab+c]
						if c == classes[i] {
							g -= 1
						}
						grad[i*vocab+c] += g * invN * upstream[0]
					}
				}
			},
		})
	}
	return loss
}

// stableSoftmax writes the max-shifted softmax of row into out.
func stableSoftmax(row, out []float64) {
	maxV := row[0]
	for _, v := range row[1:] {
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
