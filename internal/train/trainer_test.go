package train

import (
	"testing"

	"github.com/flint-ml/flint/internal/gpt"
	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/tensor"
	"github.com/flint-ml/flint/internal/tokenizer"
)

func smallModel(t *testing.T, vocab int) *gpt.GPT {
	t.Helper()
	model, err := gpt.New(gpt.Config{
		VocabSize: vocab,
		SeqLen:    8,
		EmbedDim:  8,
		NumHeads:  2,
		NumLayers: 1,
	})
	if err != nil {
		t.Fatalf("gpt.New failed: %v", err)
	}
	return model
}

// TestNewTrainer_ConfigValidation covers the constructor error paths.
func TestNewTrainer_ConfigValidation(t *testing.T) {
	model := smallModel(t, 4)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{})

	cases := []struct {
		name   string
		config Config
	}{
		{"zero epochs", Config{SeqLen: 4}},
		{"zero seq_len", Config{Epochs: 1}},
		{"seq_len beyond model", Config{Epochs: 1, SeqLen: 16}},
		{"negative clip", Config{Epochs: 1, SeqLen: 4, ClipNorm: -1}},
	}
	for _, tc := range cases {
		if _, err := NewTrainer(model, opt, tc.config); err == nil {
			t.Errorf("%s: config accepted", tc.name)
		}
	}
}

// TestTrain_RejectsShortCorpus checks the minimum-length guard.
func TestTrain_RejectsShortCorpus(t *testing.T) {
	model := smallModel(t, 4)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{})
	trainer, err := NewTrainer(model, opt, Config{Epochs: 1, SeqLen: 4})
	if err != nil {
		t.Fatalf("NewTrainer failed: %v", err)
	}

	if _, err := trainer.Train([]int{0, 1, 2, 3}); err == nil {
		t.Error("corpus shorter than seq_len+1 accepted")
	}
}

// TestTrain_LossDecreasesOnRepeatingCorpus trains on a trivially repeating
// pattern and checks the mean loss drops over epochs.
func TestTrain_LossDecreasesOnRepeatingCorpus(t *testing.T) {
	tok := tokenizer.NewCharTokenizer("ab")
	corpus := ""
	for i := 0; i < 30; i++ {
		corpus += "ab"
	}
	ids := tok.Encode(corpus)

	model := smallModel(t, tok.VocabSize())
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01})
	trainer, err := NewTrainer(model, opt, Config{Epochs: 8, SeqLen: 6, ClipNorm: 1.0})
	if err != nil {
		t.Fatalf("NewTrainer failed: %v", err)
	}

	losses, err := trainer.Train(ids)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if len(losses) != 8 {
		t.Fatalf("epoch losses: got %d, want 8", len(losses))
	}
	if losses[len(losses)-1] >= losses[0] {
		t.Errorf("loss did not decrease: first %v, last %v", losses[0], losses[len(losses)-1])
	}
}

// TestTrain_LRDecay checks the per-epoch learning-rate multiplier.
func TestTrain_LRDecay(t *testing.T) {
	model := smallModel(t, 4)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := NewTrainer(model, opt, Config{Epochs: 2, SeqLen: 4, LRDecay: 0.5})
	if err != nil {
		t.Fatalf("NewTrainer failed: %v", err)
	}

	if _, err := trainer.Train([]int{0, 1, 2, 3, 0, 1, 2, 3, 0}); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if got := opt.LR(); got != 0.025 {
		t.Errorf("LR after two decays: got %v, want 0.025", got)
	}
}

// TestTrain_StepCallback checks the OnStep hook fires with loss values.
func TestTrain_StepCallback(t *testing.T) {
	model := smallModel(t, 4)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{})
	trainer, err := NewTrainer(model, opt, Config{Epochs: 1, SeqLen: 4})
	if err != nil {
		t.Fatalf("NewTrainer failed: %v", err)
	}

	var infos []StepInfo
	trainer.OnStep(func(info StepInfo) { infos = append(infos, info) })

	if _, err := trainer.Train([]int{0, 1, 2, 3, 0, 1, 2, 3, 0}); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("step callback never fired")
	}
	for _, info := range infos {
		if info.Loss <= 0 {
			t.Errorf("step %d: non-positive loss %v", info.Step, info.Loss)
		}
	}
}

// TestClipGradNorm checks rescaling above the threshold and the identity
// below it.
func TestClipGradNorm(t *testing.T) {
	p, _ := tensor.New([]float64{0, 0}, tensor.Shape{2}, true)
	p.Grad()[0] = 3
	p.Grad()[1] = 4 // global norm 5

	clipGradNorm([]*tensor.Tensor{p}, 1.0)
	if g := p.Grad(); g[0] != 0.6 || g[1] != 0.8 {
		t.Errorf("clipped grads: got %v, want [0.6 0.8]", g)
	}

	clipGradNorm([]*tensor.Tensor{p}, 10.0)
	if g := p.Grad(); g[0] != 0.6 || g[1] != 0.8 {
		t.Errorf("grads below threshold mutated: %v", g)
	}
}
