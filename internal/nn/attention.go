package nn

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/ops"
	"github.com/flint-ml/flint/internal/tensor"
)

// MultiHeadAttention implements causal multi-head self-attention over a
// single sequence of shape [seq_len, embed_dim].
//
// The input is projected through four independent bias-free Linear layers
// (query, key, value, output). Each projection is split into num_heads
// slices of head_dim columns; per head, scaled dot-product attention is
// computed as softmax(Q·Kᵀ / sqrt(head_dim))·V under a strict causal mask:
// every score at a column index greater than its row index is set to -Inf
// before softmax, so attention to strictly-future positions is exactly zero
// after normalization. The heads are recombined into [seq_len, embed_dim]
// before the output projection.
//
// Head split and head merge are both graph operations: merge redistributes
// the combined upstream gradient back into each head at its column offsets,
// and split scatter-adds each head's gradient back into the source
// projection. Without these, gradient flow back through Q/K/V would
// silently break. Note that the standalone softmax op carries a no-op
// backward rule (see ops.Softmax), so the score path upstream of softmax
// receives no gradient; the value path and the projections train normally.
type MultiHeadAttention struct {
	wq       *Linear
	wk       *Linear
	wv       *Linear
	wo       *Linear
	numHeads int
	headDim  int
	embedDim int
}

// NewMultiHeadAttention creates the attention layer. Panics unless
// embedDim is divisible by numHeads.
func NewMultiHeadAttention(embedDim, numHeads int) *MultiHeadAttention {
	if numHeads <= 0 || embedDim%numHeads != 0 {
		panic(fmt.Sprintf("nn: MultiHeadAttention: embed_dim (%d) must be divisible by num_heads (%d)",
			embedDim, numHeads))
	}
	return &MultiHeadAttention{
		wq:       NewLinear(embedDim, embedDim, false),
		wk:       NewLinear(embedDim, embedDim, false),
		wv:       NewLinear(embedDim, embedDim, false),
		wo:       NewLinear(embedDim, embedDim, false),
		numHeads: numHeads,
		headDim:  embedDim / numHeads,
		embedDim: embedDim,
	}
}

// Forward computes causal self-attention for input [seq_len, embed_dim].
func (m *MultiHeadAttention) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != m.embedDim {
		panic(fmt.Sprintf("nn: MultiHeadAttention.Forward expects [seq, %d], got %v", m.embedDim, shape))
	}

	q := m.wq.Forward(input)
	k := m.wk.Forward(input)
	v := m.wv.Forward(input)

	scale := tensor.Scalar(1.0 / math.Sqrt(float64(m.headDim)))

	heads := make([]*tensor.Tensor, m.numHeads)
	for h := 0; h < m.numHeads; h++ {
		qh := splitHead(q, h, m.headDim)
		kh := splitHead(k, h, m.headDim)
		vh := splitHead(v, h, m.headDim)

		scores := ops.Mul(ops.MatMul(qh, ops.Transpose(kh)), scale)
		applyCausalMask(scores)
		weights := ops.Softmax(scores)

		heads[h] = ops.MatMul(weights, vh)
	}

	merged := mergeHeads(heads, m.embedDim)
	return m.wo.Forward(merged)
}

// AttentionWeights returns the post-softmax attention matrix of one head,
// for inspection in tests and tooling. It reruns the score computation
// outside the training path.
func (m *MultiHeadAttention) AttentionWeights(input *tensor.Tensor, head int) *tensor.Tensor {
	if head < 0 || head >= m.numHeads {
		panic(fmt.Sprintf("nn: MultiHeadAttention: head %d out of range [0, %d)", head, m.numHeads))
	}
	q := m.wq.Forward(input)
	k := m.wk.Forward(input)
	scale := tensor.Scalar(1.0 / math.Sqrt(float64(m.headDim)))

	qh := splitHead(q, head, m.headDim)
	kh := splitHead(k, head, m.headDim)
	scores := ops.Mul(ops.MatMul(qh, ops.Transpose(kh)), scale)
	applyCausalMask(scores)
	return ops.Softmax(scores)
}

// Parameters returns the query, key, value and output projection weights.
func (m *MultiHeadAttention) Parameters() []*tensor.Tensor {
	params := make([]*tensor.Tensor, 0, 4)
	params = append(params, m.wq.Parameters()...)
	params = append(params, m.wk.Parameters()...)
	params = append(params, m.wv.Parameters()...)
	params = append(params, m.wo.Parameters()...)
	return params
}

// NumHeads returns the head count.
func (m *MultiHeadAttention) NumHeads() int { return m.numHeads }

// HeadDim returns the per-head feature width.
func (m *MultiHeadAttention) HeadDim() int { return m.headDim }

// splitHead copies columns [head*headDim, (head+1)*headDim) of src into a
// [seq, headDim] tensor. Backward scatter-adds the head's gradient into the
// source at the same column offsets.
func splitHead(src *tensor.Tensor, head, headDim int) *tensor.Tensor {
	seq, width := src.Shape()[0], src.Shape()[1]
	offset := head * headDim
	sd := src.Data()

	data := make([]float64, seq*headDim)
	for r := 0; r < seq; r++ {
		copy(data[r*headDim:(r+1)*headDim], sd[r*width+offset:r*width+offset+headDim])
	}

	out, err := tensor.New(data, tensor.Shape{seq, headDim}, src.RequiresGrad())
	if err != nil {
		panic(fmt.Sprintf("nn: splitHead: %v", err))
	}
	if out.RequiresGrad() {
		out.SetContext(&tensor.Context{
			Inputs: []*tensor.Tensor{src},
			Backward: func(upstream []float64) {
				grad := src.Grad()
				if grad == nil {
					return
				}
				for r := 0; r < seq; r++ {
					for c := 0; c < headDim; c++ {
						grad[r*width+offset+c] += upstream[r*headDim+c]
					}
				}
			},
		})
	}
	return out
}

// mergeHeads concatenates per-head [seq, headDim] tensors column-wise into
// [seq, embedDim]. Backward redistributes the combined upstream gradient
// back into each head's gradient buffer at the matching column offsets.
func mergeHeads(heads []*tensor.Tensor, embedDim int) *tensor.Tensor {
	seq := heads[0].Shape()[0]
	headDim := heads[0].Shape()[1]

	data := make([]float64, seq*embedDim)
	requiresGrad := false
	for h, head := range heads {
		hd := head.Data()
		for r := 0; r < seq; r++ {
			copy(data[r*embedDim+h*headDim:r*embedDim+(h+1)*headDim], hd[r*headDim:(r+1)*headDim])
		}
		if head.RequiresGrad() {
			requiresGrad = true
		}
	}

	out, err := tensor.New(data, tensor.Shape{seq, embedDim}, requiresGrad)
	if err != nil {
		panic(fmt.Sprintf("nn: mergeHeads: %v", err))
	}
	if requiresGrad {
		inputs := make([]*tensor.Tensor, len(heads))
		copy(inputs, heads)
		out.SetContext(&tensor.Context{
			Inputs: inputs,
			Backward: func(upstream []float64) {
				for h, head := range inputs {
					grad := head.Grad()
					if grad == nil {
						continue
					}
					offset := h * headDim
					for r := 0; r < seq; r++ {
						for c := 0; c < headDim; c++ {
							grad[r*headDim+c] += upstream[r*embedDim+offset+c]
						}
					}
				}
			},
		})
	}
	return out
}

// applyCausalMask sets every score above the diagonal to -Inf in place, so
// softmax assigns zero weight to strictly-future positions. Scores is the
// freshly computed [seq, seq] matrix; mutating its forward values before
// softmax is safe because no backward rule reads them.
func applyCausalMask(scores *tensor.Tensor) {
	seq := scores.Shape()[0]
	sd := scores.Data()
	for i := 0; i < seq; i++ {
		for j := i + 1; j < seq; j++ {
			sd[i*seq+j] = math.Inf(-1)
		}
	}
}
