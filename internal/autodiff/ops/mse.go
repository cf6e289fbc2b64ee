package ops

import "github.com/born-ml/autoencoder/internal/tensor"

// MSEOp represents mean squared error: output = mean((p - t)^2).
//
// The output is a tensor of shape [1].
//
// Backward pass:
//   - dL/dp = grad * 2 * (p - t) / N
//   - dL/dt = -dL/dp
type MSEOp struct {
	predictions *tensor.Tensor
	targets     *tensor.Tensor
	output      *tensor.Tensor
}

// NewMSEOp creates a new MSE operation.
func NewMSEOp(predictions, targets, output *tensor.Tensor) *MSEOp {
	return &MSEOp{predictions: predictions, targets: targets, output: output}
}

// Inputs returns [predictions, targets].
func (op *MSEOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.predictions, op.targets}
}

// Output returns the scalar loss tensor.
func (op *MSEOp) Output() *tensor.Tensor {
	return op.output
}

// Backward computes gradients for both inputs.
func (op *MSEOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	p, t := op.predictions.Data(), op.targets.Data()
	scale := 2 * outputGrad.Data()[0] / float32(len(p))

	gradP := tensor.ZerosLike(op.predictions)
	gradT := tensor.ZerosLike(op.targets)
	gp, gt := gradP.Data(), gradT.Data()
	for i := range p {
		d := scale * (p[i] - t[i])
		gp[i] = d
		gt[i] = -d
	}
	return []*tensor.Tensor{gradP, gradT}
}
