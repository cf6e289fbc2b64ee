package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.Tensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward computes input gradient for ReLU.
func (op *ReLUOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	gradInput := tensor.ZerosLike(op.input)
	in, g, gi := op.input.Data(), outputGrad.Data(), gradInput.Data()
	for i, v := range in {
		if v > 0 {
			gi[i] = g[i]
		}
	}
	return []*tensor.Tensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor max(0, x).
func (op *ReLUOp) Output() *tensor.Tensor {
	return op.output
}
