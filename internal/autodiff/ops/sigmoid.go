package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *tensor.Tensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Inputs returns the input tensors.
func (op *SigmoidOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.Tensor {
	return op.output
}

// Backward computes the gradient for sigmoid using the saved output:
// grad_input = grad_output * σ(x) * (1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	gradInput := tensor.ZerosLike(op.output)
	y, g, gi := op.output.Data(), outputGrad.Data(), gradInput.Data()
	for i := range gi {
		gi[i] = g[i] * y[i] * (1 - y[i])
	}
	return []*tensor.Tensor{gradInput}
}
