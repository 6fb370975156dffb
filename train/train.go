// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the language-model training
// loop.
package train

import (
	"github.com/flint-ml/flint/internal/gpt"
	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/train"
)

// Config defines the training run.
type Config = train.Config

// StepInfo is passed to the step callback.
type StepInfo = train.StepInfo

// Trainer drives next-token-prediction training of a model.
type Trainer = train.Trainer

// NewTrainer creates a trainer for model using opt.
func NewTrainer(model *gpt.GPT, opt optim.Optimizer, config Config) (*Trainer, error) {
	return train.NewTrainer(model, opt, config)
}
