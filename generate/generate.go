// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package generate provides the public API for autoregressive text
// generation.
package generate

import (
	"github.com/flint-ml/flint/internal/generate"
	"github.com/flint-ml/flint/internal/gpt"
	"github.com/flint-ml/flint/internal/tokenizer"
)

// SamplingConfig configures the sampling strategy.
type SamplingConfig = generate.SamplingConfig

// DefaultSamplingConfig returns sensible defaults: temperature 1.0, no
// top-k filtering, random seed.
func DefaultSamplingConfig() SamplingConfig {
	return generate.DefaultSamplingConfig()
}

// Sampler samples token ids from logits.
type Sampler = generate.Sampler

// NewSampler creates a sampler with the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	return generate.NewSampler(config)
}

// Generator produces text autoregressively from a trained model.
type Generator = generate.Generator

// NewGenerator creates a generator over model and tok.
func NewGenerator(model *gpt.GPT, tok tokenizer.Tokenizer, config SamplingConfig) *Generator {
	return generate.NewGenerator(model, tok, config)
}
