// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autoencoder builds and trains feed-forward autoencoders for 28×28
// single-channel images.
//
// Layer widths shrink from the 784 input pixels to the latent size over a
// fixed number of layers. When the total reduction does not divide evenly,
// the fractional remainder is carried from layer to layer so every layer
// shrinks by nearly the same amount:
//
//	enc, _ := autoencoder.EncoderSchedule(784, 6, 4) // [590 395 201 6]
//	dec := autoencoder.DecoderSchedule(enc, 784)     // [201 395 590 784]
//
// Example:
//
//	backend := autodiff.New()
//	model, err := autoencoder.NewMNIST(32, 3, nil, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = autoencoder.Train(ctx, model, backend, batches, autoencoder.TrainConfig{
//	    LR:     0.001,
//	    Epochs: 10,
//	})
package autoencoder

import (
	"context"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/autoencoder"
	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/born-ml/autoencoder/internal/train"
)

// Model is a feed-forward autoencoder.
type Model = autoencoder.Model

// Config describes an autoencoder architecture.
type Config = autoencoder.Config

// TrainConfig controls a training run.
type TrainConfig = train.Config

// Metrics are the per-epoch values reported when tracking is enabled.
type Metrics = train.Metrics

// Tracker records per-epoch metrics.
type Tracker = train.Tracker

// FileTracker appends metrics to a JSON-lines file.
type FileTracker = train.FileTracker

// Errors.
var (
	ErrInvalidArchitecture   = autoencoder.ErrInvalidArchitecture
	ErrMissingEvaluationData = train.ErrMissingEvaluationData
	ErrBatchShape            = train.ErrBatchShape
	ErrNoBatches             = train.ErrNoBatches
)

// EncoderSchedule returns the output width of each encoder layer.
func EncoderSchedule(inputSize, latentSize, layers int) ([]int, error) {
	return autoencoder.EncoderSchedule(inputSize, latentSize, layers)
}

// DecoderSchedule mirrors an encoder schedule back up to inputSize.
func DecoderSchedule(encoder []int, inputSize int) []int {
	return autoencoder.DecoderSchedule(encoder, inputSize)
}

// New builds an autoencoder from cfg.
func New(cfg Config, backend *autodiff.Backend) (*Model, error) {
	return autoencoder.New(cfg, backend)
}

// NewMNIST builds an autoencoder for 28×28 single-channel images.
// latentActivation may be nil.
func NewMNIST(latentSize, layers int, latentActivation nn.Module, backend *autodiff.Backend) (*Model, error) {
	return autoencoder.NewMNIST(latentSize, layers, latentActivation, backend)
}

// Train fits model to batches of images.
func Train(ctx context.Context, model *Model, backend *autodiff.Backend, batches []*tensor.Tensor, cfg TrainConfig) error {
	return train.Train(ctx, model, backend, batches, cfg)
}

// Evaluate returns the mean per-batch reconstruction loss.
func Evaluate(model *Model, backend *autodiff.Backend, batches []*tensor.Tensor) (float32, error) {
	return train.Evaluate(model, backend, batches)
}

// NewFileTracker opens path for appending per-epoch metrics.
func NewFileTracker(path string) (*FileTracker, error) {
	return train.NewFileTracker(path)
}
