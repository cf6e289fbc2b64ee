// Package nn implements the neural network modules used by the autoencoder.
//
// This package provides building blocks for constructing feed-forward
// networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Shape adapters: Flatten, Unflatten
//   - Loss functions: MSE
//   - Sequential: Container for stacking layers
//
// Every module runs its operations through an autodiff.Backend, so gradients
// are available whenever the backend's tape is recording.
package nn

import (
	"github.com/born-ml/autoencoder/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU(backend),
//	    nn.NewLinear(128, 10, backend),
//	)
type Module interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter
}

// CountParameters returns the number of scalar weights held by params.
func CountParameters(params []*Parameter) int {
	total := 0
	for _, p := range params {
		total += p.Tensor().NumElements()
	}
	return total
}
