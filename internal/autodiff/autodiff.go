// Package autodiff implements reverse-mode automatic differentiation for the
// operations the autoencoder needs.
//
// Backend executes operations eagerly on host tensors and, while its
// GradientTape is recording, records each one so that Backward can replay
// them in reverse.
//
// Usage:
//
//	backend := autodiff.New()
//	backend.Tape().StartRecording()
//
//	h := backend.Linear(x, w, b)
//	y := backend.ReLU(h)
//	loss := backend.MSE(y, target)
//
//	grads := backend.Backward(loss)
//	dw := grads[w]
//	backend.Tape().Clear()
package autodiff

import (
	"fmt"

	"github.com/born-ml/autoencoder/internal/autodiff/ops"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/chewxy/math32"
)

// Backend executes differentiable operations and records them on a tape.
type Backend struct {
	tape *GradientTape
}

// New creates a new Backend with an idle tape.
func New() *Backend {
	return &Backend{tape: NewGradientTape()}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing tape between iterations
func (b *Backend) Tape() *GradientTape {
	return b.tape
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "Autodiff(CPU)"
}

// Backward seeds the tape with dL/dL = 1 and returns gradients for every
// tensor that contributed to loss.
//
// Panics if loss is not a single-element tensor.
func (b *Backend) Backward(loss *tensor.Tensor) map[*tensor.Tensor]*tensor.Tensor {
	if loss.NumElements() != 1 {
		panic(fmt.Sprintf("Backward: loss must be a single element, got shape %v", loss.Shape()))
	}
	return b.tape.Backward(tensor.Ones(loss.Shape()))
}

// Linear computes x @ W^T + b and records the operation.
//
// x is [batch, in], weight is [out, in], bias is [out] or nil.
func (b *Backend) Linear(x, weight, bias *tensor.Tensor) *tensor.Tensor {
	out := tensor.MatMulTransB(x, weight)

	if bias != nil {
		outFeatures := weight.Shape()[0]
		if !bias.Shape().Equal(tensor.Shape{outFeatures}) {
			panic(fmt.Sprintf("Linear: bias shape %v does not match %d output features", bias.Shape(), outFeatures))
		}
		od, bd := out.Data(), bias.Data()
		for row := 0; row < len(od); row += outFeatures {
			for j := 0; j < outFeatures; j++ {
				od[row+j] += bd[j]
			}
		}
	}

	b.tape.Record(ops.NewLinearOp(x, weight, bias, out))
	return out
}

// ReLU computes max(0, x) and records the operation.
func (b *Backend) ReLU(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(x)
	od := out.Data()
	for i, v := range x.Data() {
		if v > 0 {
			od[i] = v
		}
	}
	b.tape.Record(ops.NewReLUOp(x, out))
	return out
}

// Sigmoid computes 1 / (1 + exp(-x)) and records the operation.
func (b *Backend) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(x)
	od := out.Data()
	for i, v := range x.Data() {
		od[i] = 1 / (1 + math32.Exp(-v))
	}
	b.tape.Record(ops.NewSigmoidOp(x, out))
	return out
}

// Tanh computes tanh(x) and records the operation.
func (b *Backend) Tanh(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(x)
	od := out.Data()
	for i, v := range x.Data() {
		od[i] = math32.Tanh(v)
	}
	b.tape.Record(ops.NewTanhOp(x, out))
	return out
}

// Reshape returns a view of x with a new shape and records the operation.
func (b *Backend) Reshape(x *tensor.Tensor, dims ...int) *tensor.Tensor {
	out := x.Reshape(dims...)
	b.tape.Record(ops.NewReshapeOp(x, out))
	return out
}

// MSE computes mean((predictions - targets)^2) as a [1] tensor and records
// the operation.
func (b *Backend) MSE(predictions, targets *tensor.Tensor) *tensor.Tensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MSE: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}

	p, t := predictions.Data(), targets.Data()
	var sum float64
	for i := range p {
		d := float64(p[i] - t[i])
		sum += d * d
	}

	out := tensor.Full(tensor.Shape{1}, float32(sum/float64(len(p))))
	b.tape.Record(ops.NewMSEOp(predictions, targets, out))
	return out
}
