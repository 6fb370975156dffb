// Package train implements the language-model training loop: sliding-window
// batching over a token stream, gradient clipping, and learning-rate decay.
package train

import (
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/gpt"
	"github.com/flint-ml/flint/internal/nn"
	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/tensor"
)

// Config defines the training run.
type Config struct {
	// Epochs is the number of full passes over the token stream.
	Epochs int

	// SeqLen is the context window length per step. Must not exceed the
	// model's configured context length.
	SeqLen int

	// ClipNorm rescales gradients when their global L2 norm exceeds this
	// value. 0 = disabled.
	ClipNorm float64

	// LRDecay multiplies the learning rate after every epoch. 0 or 1 =
	// constant learning rate.
	LRDecay float64

	// LogEvery invokes the step callback every N steps. 0 = every step.
	LogEvery int
}

// StepInfo is passed to the step callback.
type StepInfo struct {
	Epoch int
	Step  int
	Loss  float64
	LR    float64
}

// Trainer drives next-token-prediction training of a model.
type Trainer struct {
	model  *gpt.GPT
	opt    optim.Optimizer
	config Config

	onStep func(StepInfo)
}

// NewTrainer creates a trainer for model using opt.
func NewTrainer(model *gpt.GPT, opt optim.Optimizer, config Config) (*Trainer, error) {
	if config.Epochs <= 0 {
		return nil, fmt.Errorf("train: epochs must be positive, got %d", config.Epochs)
	}
	if config.SeqLen <= 0 {
		return nil, fmt.Errorf("train: seq_len must be positive, got %d", config.SeqLen)
	}
	if config.SeqLen > model.Config().SeqLen {
		return nil, fmt.Errorf("train: seq_len %d exceeds model context length %d",
			config.SeqLen, model.Config().SeqLen)
	}
	if config.ClipNorm < 0 {
		return nil, fmt.Errorf("train: clip_norm must be non-negative, got %g", config.ClipNorm)
	}
	return &Trainer{model: model, opt: opt, config: config}, nil
}

// OnStep registers a callback invoked every LogEvery steps.
func (t *Trainer) OnStep(fn func(StepInfo)) { t.onStep = fn }

// Train runs the configured number of epochs over ids and returns the mean
// loss of each epoch. Each step trains on one window of SeqLen tokens
// predicting the window shifted by one.
func (t *Trainer) Train(ids []int) ([]float64, error) {
	seq := t.config.SeqLen
	if len(ids) < seq+1 {
		return nil, fmt.Errorf("train: need at least %d tokens for seq_len %d, got %d",
			seq+1, seq, len(ids))
	}

	epochLosses := make([]float64, 0, t.config.Epochs)
	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		total := 0.0
		steps := 0
		for i := 0; i+seq < len(ids); i += seq {
			loss := t.step(ids[i:i+seq], ids[i+1:i+seq+1])
			total += loss
			steps++

			if t.onStep != nil && (t.config.LogEvery == 0 || steps%t.config.LogEvery == 0) {
				t.onStep(StepInfo{Epoch: epoch, Step: steps, Loss: loss, LR: t.opt.LR()})
			}
		}
		epochLosses = append(epochLosses, total/float64(steps))

		if t.config.LRDecay > 0 && t.config.LRDecay != 1 {
			t.opt.SetLR(t.opt.LR() * t.config.LRDecay)
		}
	}
	return epochLosses, nil
}

// step runs one forward/backward/update cycle and returns the step loss.
func (t *Trainer) step(inputs, targets []int) float64 {
	t.opt.ZeroGrad()

	logits := t.model.Forward(inputs)
	loss := nn.CrossEntropyLoss(logits, targetTensor(targets))
	if err := loss.Backward(); err != nil {
		panic(fmt.Sprintf("train: backward failed: %v", err))
	}

	if t.config.ClipNorm > 0 {
		clipGradNorm(t.model.Parameters(), t.config.ClipNorm)
	}
	t.opt.Step()

	return loss.Data()[0]
}

// clipGradNorm rescales all gradients in place when their global L2 norm
// exceeds maxNorm.
func clipGradNorm(params []*tensor.Tensor, maxNorm float64) {
	sumSq := 0.0
	for _, p := range params {
		for _, g := range p.Grad() {
			sumSq += g * g
		}
	}
	norm := math.Sqrt(sumSq)
	if norm <= maxNorm {
		return
	}
	scale := maxNorm / norm
	for _, p := range params {
		grad := p.Grad()
		for i := range grad {
			grad[i] *= scale
		}
	}
}

func targetTensor(ids []int) *tensor.Tensor {
	data := make([]float64, len(ids))
	for i, id := range ids {
		data[i] = float64(id)
	}
	t, err := tensor.New(data, tensor.Shape{len(ids)}, false)
	if err != nil {
		panic(fmt.Sprintf("train: %v", err))
	}
	return t
}
