package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// ReshapeOp records a reshape operation for autodiff.
//
// Backward reshapes the output gradient back to the input shape.
type ReshapeOp struct {
	input     *tensor.Tensor
	output    *tensor.Tensor
	origShape tensor.Shape
}

// NewReshapeOp creates a new Reshape operation.
func NewReshapeOp(input, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{
		input:     input,
		output:    output,
		origShape: input.Shape().Clone(),
	}
}

// Inputs returns the input tensors.
func (op *ReshapeOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor.
func (op *ReshapeOp) Output() *tensor.Tensor {
	return op.output
}

// Backward computes gradients for Reshape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad.Reshape(op.origShape...)}
}
