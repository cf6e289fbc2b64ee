package autodiff_test

import (
	"testing"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

// smoothNet computes mean((sigmoid(tanh(x W1^T + b1) W2^T + b2) - target)^2)
// for the parameters packed into params.
type smoothNet struct {
	x, target *tensor.Tensor
}

const (
	inF  = 3
	hidF = 2
	outF = 3
)

func unpack(params []float32) (w1, b1, w2, b2 *tensor.Tensor) {
	off := 0
	take := func(shape tensor.Shape) *tensor.Tensor {
		n := shape.NumElements()
		t, err := tensor.FromSlice(params[off:off+n], shape)
		if err != nil {
			panic(err)
		}
		off += n
		return t
	}
	w1 = take(tensor.Shape{hidF, inF})
	b1 = take(tensor.Shape{hidF})
	w2 = take(tensor.Shape{outF, hidF})
	b2 = take(tensor.Shape{outF})
	return w1, b1, w2, b2
}

func (n smoothNet) loss(backend *autodiff.Backend, w1, b1, w2, b2 *tensor.Tensor) *tensor.Tensor {
	h := backend.Tanh(backend.Linear(n.x, w1, b1))
	y := backend.Sigmoid(backend.Linear(h, w2, b2))
	return backend.MSE(y, n.target)
}

func TestGradientCheck_SmoothNet(t *testing.T) {
	x, _ := tensor.FromSlice([]float32{0.1, -0.4, 0.9, 0.7, 0.2, -0.3}, tensor.Shape{2, inF})
	target, _ := tensor.FromSlice([]float32{0.0, 1.0, 0.5, 1.0, 0.0, 0.25}, tensor.Shape{2, outF})
	net := smoothNet{x: x, target: target}

	params := []float32{
		0.3, -0.2, 0.5, 0.1, 0.4, -0.6, // w1
		0.05, -0.1, // b1
		0.7, -0.3, 0.2, 0.9, -0.5, 0.4, // w2
		0.0, 0.1, -0.2, // b2
	}

	// Analytic gradients.
	backend := autodiff.New()
	backend.Tape().StartRecording()
	w1, b1, w2, b2 := unpack(params)
	grads := backend.Backward(net.loss(backend, w1, b1, w2, b2))

	var analytic []float64
	for _, p := range []*tensor.Tensor{w1, b1, w2, b2} {
		g, ok := grads[p]
		if !assert.True(t, ok, "missing gradient") {
			return
		}
		for _, v := range g.Data() {
			analytic = append(analytic, float64(v))
		}
	}

	// Numerical gradients.
	f := func(p []float64) float64 {
		p32 := make([]float32, len(p))
		for i, v := range p {
			p32[i] = float32(v)
		}
		w1, b1, w2, b2 := unpack(p32)
		return float64(net.loss(autodiff.New(), w1, b1, w2, b2).Item())
	}
	x0 := make([]float64, len(params))
	for i, v := range params {
		x0[i] = float64(v)
	}
	numeric := fd.Gradient(nil, f, x0, &fd.Settings{Formula: fd.Central, Step: 1e-2})

	for i := range numeric {
		assert.InDelta(t, numeric[i], analytic[i], 2e-3, "gradient mismatch at parameter %d", i)
	}
}
