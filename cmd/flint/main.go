// Package main provides the Flint ML Framework CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flint-ml/flint/checkpoint"
	"github.com/flint-ml/flint/generate"
	"github.com/flint-ml/flint/gpt"
	"github.com/flint-ml/flint/optim"
	"github.com/flint-ml/flint/tokenizer"
	"github.com/flint-ml/flint/train"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("Flint ML Framework %s\n", version)
	case "train":
		err = runTrain(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "flint: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Flint ML Framework - a small autograd engine and transformer trainer")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a character-level model on a text corpus")
	fmt.Println("  generate   Sample text from a trained checkpoint")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "path to the training text (required)")
	out := fs.String("out", "model.flint", "checkpoint output path")
	epochs := fs.Int("epochs", 10, "training epochs")
	seqLen := fs.Int("seq-len", 64, "context window length")
	embedDim := fs.Int("embed-dim", 128, "model width")
	numHeads := fs.Int("heads", 4, "attention heads")
	numLayers := fs.Int("layers", 2, "transformer blocks")
	lr := fs.Float64("lr", 3e-4, "Adam learning rate")
	clip := fs.Float64("clip", 1.0, "gradient clipping norm, 0 to disable")
	decay := fs.Float64("lr-decay", 1.0, "per-epoch learning rate multiplier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *corpusPath == "" {
		return fmt.Errorf("train: -corpus is required")
	}

	corpus, err := os.ReadFile(*corpusPath)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	tok := tokenizer.NewCharTokenizer(string(corpus))
	ids := tok.Encode(string(corpus))

	config := gpt.Config{
		VocabSize: tok.VocabSize(),
		SeqLen:    *seqLen,
		EmbedDim:  *embedDim,
		NumHeads:  *numHeads,
		NumLayers: *numLayers,
	}
	model, err := gpt.New(config)
	if err != nil {
		return err
	}

	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: *lr})
	trainer, err := train.NewTrainer(model, opt, train.Config{
		Epochs:   *epochs,
		SeqLen:   *seqLen,
		ClipNorm: *clip,
		LRDecay:  *decay,
		LogEvery: 10,
	})
	if err != nil {
		return err
	}
	trainer.OnStep(func(info train.StepInfo) {
		fmt.Printf("epoch %d step %d loss %.4f lr %.2e\n", info.Epoch, info.Step, info.Loss, info.LR)
	})

	losses, err := trainer.Train(ids)
	if err != nil {
		return err
	}
	fmt.Printf("final epoch loss: %.4f\n", losses[len(losses)-1])

	meta := checkpoint.ModelMeta{
		VocabSize: config.VocabSize,
		SeqLen:    config.SeqLen,
		EmbedDim:  config.EmbedDim,
		NumHeads:  config.NumHeads,
		NumLayers: config.NumLayers,
	}
	if err := checkpoint.Save(*out, meta, tok.Vocab(), model.Parameters()); err != nil {
		return err
	}
	fmt.Printf("saved checkpoint to %s\n", *out)
	return nil
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	ckptPath := fs.String("checkpoint", "model.flint", "checkpoint path")
	prompt := fs.String("prompt", "", "generation prompt")
	maxTokens := fs.Int("max-tokens", 200, "tokens to generate")
	temperature := fs.Float64("temperature", 1.0, "sampling temperature, 0 for greedy")
	topK := fs.Int("top-k", 0, "restrict sampling to the top K tokens, 0 to disable")
	seed := fs.Int64("seed", -1, "sampling seed, -1 for random")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ckpt, err := checkpoint.Load(*ckptPath)
	if err != nil {
		return err
	}
	model, err := gpt.New(gpt.Config{
		VocabSize: ckpt.Meta.VocabSize,
		SeqLen:    ckpt.Meta.SeqLen,
		EmbedDim:  ckpt.Meta.EmbedDim,
		NumHeads:  ckpt.Meta.NumHeads,
		NumLayers: ckpt.Meta.NumLayers,
	})
	if err != nil {
		return err
	}
	if err := ckpt.Apply(model.Parameters()); err != nil {
		return err
	}
	tok := tokenizer.NewCharTokenizerFromVocab(ckpt.Vocab)

	gen := generate.NewGenerator(model, tok, generate.SamplingConfig{
		Temperature: *temperature,
		TopK:        *topK,
		Seed:        *seed,
	})
	fmt.Print(*prompt)
	fmt.Println(gen.Generate(*prompt, *maxTokens))
	return nil
}
