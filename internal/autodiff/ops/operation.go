// Package ops defines the differentiable operations recorded on the gradient tape.
//
// Each operation keeps the tensors it read during the forward pass and
// computes input gradients during the backward pass:
//   - LinearOp: y = x @ W^T + b
//   - ReLUOp: y = max(0, x)
//   - SigmoidOp: y = 1 / (1 + exp(-x))
//   - TanhOp: y = tanh(x)
//   - ReshapeOp: y = reshape(x)
//   - MSEOp: y = mean((p - t)^2)
package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	// A nil entry means no gradient flows to that input.
	Backward(outputGrad *tensor.Tensor) []*tensor.Tensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}

