package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// LinearOp represents a fully connected transform: output = x @ W^T + b.
//
// Shapes: x [batch, in], W [out, in], b [out], output [batch, out].
//
// Backward pass:
//   - dL/dx = grad @ W
//   - dL/dW = grad^T @ x
//   - dL/db = sum of grad over the batch dimension
type LinearOp struct {
	inputs []*tensor.Tensor // [x, W] or [x, W, b]
	output *tensor.Tensor
}

// NewLinearOp creates a new LinearOp. bias may be nil.
func NewLinearOp(x, weight, bias, output *tensor.Tensor) *LinearOp {
	inputs := []*tensor.Tensor{x, weight}
	if bias != nil {
		inputs = append(inputs, bias)
	}
	return &LinearOp{inputs: inputs, output: output}
}

// Backward computes input gradients for the linear transform.
func (op *LinearOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	x, w := op.inputs[0], op.inputs[1]

	grads := []*tensor.Tensor{
		tensor.MatMul(outputGrad, w),
		tensor.MatMulTransA(outputGrad, x),
	}

	if len(op.inputs) == 3 {
		outFeatures := w.Shape()[0]
		gradB := tensor.Zeros(tensor.Shape{outFeatures})
		gb := gradB.Data()
		g := outputGrad.Data()
		for row := 0; row < len(g); row += outFeatures {
			for j := 0; j < outFeatures; j++ {
				gb[j] += g[row+j]
			}
		}
		grads = append(grads, gradB)
	}

	return grads
}

// Inputs returns the input tensors.
func (op *LinearOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *LinearOp) Output() *tensor.Tensor {
	return op.output
}
