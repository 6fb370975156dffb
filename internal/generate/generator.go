package generate

import (
	"github.com/flint-ml/flint/internal/gpt"
	"github.com/flint-ml/flint/internal/tokenizer"
)

// Generator produces text autoregressively from a trained model.
type Generator struct {
	model   *gpt.GPT
	tok     tokenizer.Tokenizer
	sampler *Sampler
}

// NewGenerator creates a generator over model and tok using the given
// sampling configuration.
func NewGenerator(model *gpt.GPT, tok tokenizer.Tokenizer, config SamplingConfig) *Generator {
	return &Generator{
		model:   model,
		tok:     tok,
		sampler: NewSampler(config),
	}
}

// Generate encodes prompt, feeds the trailing context window through the
// model, samples the next token from the final position's logits, and
// repeats maxTokens times. It returns the decoded continuation (the prompt
// is not echoed).
//
// An empty or fully-unknown prompt starts generation from token 0.
func (g *Generator) Generate(prompt string, maxTokens int) string {
	seqLen := g.model.Config().SeqLen

	ids := g.tok.Encode(prompt)
	if len(ids) == 0 {
		ids = []int{0}
	}

	generated := make([]int, 0, maxTokens)
	for i := 0; i < maxTokens; i++ {
		context := ids
		if len(context) > seqLen {
			context = context[len(context)-seqLen:]
		}

		logits := g.model.Forward(context)
		vocab := logits.Shape()[1]
		last := logits.Data()[(logits.Shape()[0]-1)*vocab:]

		next := g.sampler.Sample(last)
		ids = append(ids, next)
		generated = append(generated, next)
	}
	return g.tok.Decode(generated)
}
