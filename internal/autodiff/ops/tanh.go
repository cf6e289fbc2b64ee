package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// TanhOp represents the hyperbolic tangent activation.
type TanhOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewTanhOp creates a new tanh operation.
func NewTanhOp(input, output *tensor.Tensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

// Inputs returns the input tensors.
func (op *TanhOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.Tensor {
	return op.output
}

// Backward computes grad_input = grad_output * (1 - tanh(x)^2).
func (op *TanhOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	gradInput := tensor.ZerosLike(op.output)
	y, g, gi := op.output.Data(), outputGrad.Data(), gradInput.Data()
	for i := range gi {
		gi[i] = g[i] * (1 - y[i]*y[i])
	}
	return []*tensor.Tensor{gradInput}
}
