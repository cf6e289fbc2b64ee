package nn

import (
	"fmt"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSELoss(backend)
//	predictions := model.Forward(input)
//	loss := mse.Forward(predictions, input)
type MSELoss struct {
	backend *autodiff.Backend
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss(backend *autodiff.Backend) *MSELoss {
	return &MSELoss{backend: backend}
}

// Forward computes the MSE loss as a [1] tensor.
//
// Panics if predictions and targets differ in shape.
func (m *MSELoss) Forward(predictions, targets *tensor.Tensor) *tensor.Tensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MSELoss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}
	return m.backend.MSE(predictions, targets)
}
