// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gpt provides the public API for the decoder-only transformer
// language model.
package gpt

import (
	"github.com/flint-ml/flint/internal/gpt"
)

// Config defines the model architecture.
type Config = gpt.Config

// GPT is a decoder-only transformer language model.
type GPT = gpt.GPT

// New builds a model with randomly initialized weights.
//
// Example:
//
//	model, err := gpt.New(gpt.Config{
//		VocabSize: 65,
//		SeqLen:    64,
//		EmbedDim:  128,
//		NumHeads:  4,
//		NumLayers: 2,
//	})
func New(config Config) (*GPT, error) {
	return gpt.New(config)
}
