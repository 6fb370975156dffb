// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package checkpoint provides the public API for saving and loading trained
// models in the .flint container format.
package checkpoint

import (
	"github.com/flint-ml/flint/internal/serialization"
	"github.com/flint-ml/flint/internal/tensor"
)

// ModelMeta records the architecture stored in a checkpoint.
type ModelMeta = serialization.ModelMeta

// Checkpoint is a fully read .flint file.
type Checkpoint = serialization.Checkpoint

// Save writes model parameters and the tokenizer vocabulary to path.
func Save(path string, meta ModelMeta, vocab string, params []*tensor.Tensor) error {
	return serialization.Save(path, meta, vocab, params)
}

// Load reads a .flint checkpoint from path. Apply the result to a model
// built from the checkpoint's ModelMeta.
func Load(path string) (*Checkpoint, error) {
	return serialization.Load(path)
}
