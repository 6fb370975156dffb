// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for gradient-based optimizers.
package optim

import (
	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// SGDConfig configures SGD; zero values select the defaults.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer over params.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
func NewSGD(params []*tensor.Tensor, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam is the Adam optimizer with bias-corrected moment estimates.
type Adam = optim.Adam

// AdamConfig configures Adam; zero values select the defaults.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer over params.
//
// Example:
//
//	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 3e-4})
func NewAdam(params []*tensor.Tensor, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}
