// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers an autoencoder is assembled from.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Flatten, Unflatten
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSELoss
//   - Utilities: Sequential, Module interface, Parameter
//
// Activations are usually passed to autoencoder.NewMNIST as the latent
// activation:
//
//	backend := autodiff.New()
//	model, err := autoencoder.NewMNIST(32, 3, nn.NewSigmoid(backend), backend)
package nn

import (
	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/nn"
)

// Module is the interface every layer implements.
type Module = nn.Module

// Parameter is a trainable tensor.
type Parameter = nn.Parameter

// Linear is a fully connected layer: y = x @ W^T + b.
type Linear = nn.Linear

// ReLU activation.
type ReLU = nn.ReLU

// Sigmoid activation.
type Sigmoid = nn.Sigmoid

// Tanh activation.
type Tanh = nn.Tanh

// Flatten collapses all but the batch dimension.
type Flatten = nn.Flatten

// Unflatten restores per-sample dimensions.
type Unflatten = nn.Unflatten

// Sequential chains modules.
type Sequential = nn.Sequential

// MSELoss computes mean squared error.
type MSELoss = nn.MSELoss

// NewLinear creates a Linear layer with Xavier-initialized weights and zero bias.
func NewLinear(inFeatures, outFeatures int, backend *autodiff.Backend) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// NewReLU creates a ReLU activation.
func NewReLU(backend *autodiff.Backend) *ReLU {
	return nn.NewReLU(backend)
}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid(backend *autodiff.Backend) *Sigmoid {
	return nn.NewSigmoid(backend)
}

// NewTanh creates a Tanh activation.
func NewTanh(backend *autodiff.Backend) *Tanh {
	return nn.NewTanh(backend)
}

// NewFlatten creates a Flatten module.
func NewFlatten(backend *autodiff.Backend) *Flatten {
	return nn.NewFlatten(backend)
}

// NewUnflatten creates a module reshaping [batch, N] to [batch, dims...].
func NewUnflatten(backend *autodiff.Backend, dims ...int) *Unflatten {
	return nn.NewUnflatten(backend, dims...)
}

// NewSequential chains modules in order.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// NewMSELoss creates an MSE loss.
func NewMSELoss(backend *autodiff.Backend) *MSELoss {
	return nn.NewMSELoss(backend)
}

// CountParameters returns the total number of scalar parameters.
func CountParameters(params []*Parameter) int {
	return nn.CountParameters(params)
}

// Seed makes subsequent weight initialization deterministic.
func Seed(seed uint64) {
	nn.Seed(seed)
}
