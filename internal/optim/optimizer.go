// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	for _, batch := range batches {
//	    backend.Tape().StartRecording()
//	    loss := mse.Forward(model.Forward(batch), batch)
//	    grads := backend.Backward(loss)
//
//	    optimizer.Step(grads)
//	    optimizer.ZeroGrad()
//	    backend.Tape().Clear()
//	}
package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes the gradient map produced by the backward pass and updates
	// parameters in-place. Parameters absent from the map are skipped.
	Step(grads map[*tensor.Tensor]*tensor.Tensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// New builds an optimizer by name ("adam" or "sgd") with the given learning
// rate and default hyperparameters otherwise.
func New(name string, params []*nn.Parameter, lr float32) (Optimizer, error) {
	switch strings.ToLower(name) {
	case "", "adam":
		return NewAdam(params, AdamConfig{LR: lr}), nil
	case "sgd":
		return NewSGD(params, SGDConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want adam or sgd)", name)
	}
}

// getGradient looks up the gradient for a parameter and records it on the
// parameter.
//
// Returns nil if no gradient is found (parameter wasn't part of computation graph).
func getGradient(param *nn.Parameter, grads map[*tensor.Tensor]*tensor.Tensor) *tensor.Tensor {
	if param == nil {
		return nil
	}
	grad := grads[param.Tensor()]
	if grad != nil {
		param.SetGrad(grad)
	}
	return grad
}
