// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Every layer of a model shares one Backend; its gradient tape records
// operations while recording is on.
//
// Example:
//
//	backend := autodiff.New()
//	model, _ := autoencoder.NewMNIST(32, 3, nil, backend)
package autodiff

import "github.com/born-ml/autoencoder/internal/autodiff"

// Backend executes differentiable operations and records them on a tape.
type Backend = autodiff.Backend

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New creates a new Backend with an idle tape.
func New() *Backend {
	return autodiff.New()
}
