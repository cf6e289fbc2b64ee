package autodiff_test

import (
	"testing"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return x
}

func TestTape_RecordingState(t *testing.T) {
	backend := autodiff.New()
	x := fromSlice(t, []float32{-1, 2}, tensor.Shape{1, 2})

	backend.ReLU(x)
	assert.Equal(t, 0, backend.Tape().Len(), "idle tape must not record")

	backend.Tape().StartRecording()
	backend.ReLU(x)
	assert.Equal(t, 1, backend.Tape().Len())

	backend.Tape().Clear()
	assert.Equal(t, 0, backend.Tape().Len())
	assert.True(t, backend.Tape().IsRecording(), "Clear keeps recording state")

	backend.Tape().StopRecording()
	assert.False(t, backend.Tape().IsRecording())
}

func TestBackward_EmptyTape(t *testing.T) {
	backend := autodiff.New()
	grads := backend.Tape().Backward(tensor.Ones(tensor.Shape{1}))
	assert.Empty(t, grads)
}

func TestLinear_Forward(t *testing.T) {
	backend := autodiff.New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	w := fromSlice(t, []float32{1, 0, 1, 0, 1, 0}, tensor.Shape{2, 3})
	b := fromSlice(t, []float32{0.5, -1}, tensor.Shape{2})

	out := backend.Linear(x, w, b)

	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{4.5, 1, 10.5, 4}, out.Data())
}

func TestLinear_BiasShapeMismatch(t *testing.T) {
	backend := autodiff.New()
	x := tensor.Zeros(tensor.Shape{1, 3})
	w := tensor.Zeros(tensor.Shape{2, 3})

	assert.Panics(t, func() { backend.Linear(x, w, tensor.Zeros(tensor.Shape{3})) })
}

func TestLinear_Backward(t *testing.T) {
	backend := autodiff.New()
	backend.Tape().StartRecording()

	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	w := fromSlice(t, []float32{1, 1, 1, 1, 1, 1}, tensor.Shape{3, 2})
	b := tensor.Zeros(tensor.Shape{3})

	out := backend.Linear(x, w, b)
	grads := backend.Tape().Backward(tensor.Ones(out.Shape()))

	// dW = grad^T @ x: each row is the column sum of x.
	assert.Equal(t, []float32{4, 6, 4, 6, 4, 6}, grads[w].Data())
	// db = batch sum of ones.
	assert.Equal(t, []float32{2, 2, 2}, grads[b].Data())
	// dx = grad @ W: each element sums a column of W.
	assert.Equal(t, []float32{3, 3, 3, 3}, grads[x].Data())
}

func TestReLU_ForwardBackward(t *testing.T) {
	backend := autodiff.New()
	backend.Tape().StartRecording()

	x := fromSlice(t, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5})
	y := backend.ReLU(x)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, y.Data())

	grads := backend.Tape().Backward(tensor.Full(tensor.Shape{5}, 3))
	assert.Equal(t, []float32{0, 0, 0, 3, 3}, grads[x].Data())
}

func TestSigmoidTanh_Forward(t *testing.T) {
	backend := autodiff.New()
	x := fromSlice(t, []float32{0}, tensor.Shape{1})

	assert.InDelta(t, 0.5, backend.Sigmoid(x).Item(), 1e-6)
	assert.InDelta(t, 0.0, backend.Tanh(x).Item(), 1e-6)
}

func TestReshape_Backward(t *testing.T) {
	backend := autodiff.New()
	backend.Tape().StartRecording()

	x := tensor.Zeros(tensor.Shape{2, 1, 2, 2})
	flat := backend.Reshape(x, 2, -1)
	require.Equal(t, tensor.Shape{2, 4}, flat.Shape())

	grads := backend.Tape().Backward(tensor.Ones(flat.Shape()))
	assert.Equal(t, tensor.Shape{2, 1, 2, 2}, grads[x].Shape())
}

func TestMSE(t *testing.T) {
	backend := autodiff.New()
	backend.Tape().StartRecording()

	p := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	target := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})

	loss := backend.MSE(p, target)
	// (0 + 1 + 4 + 9) / 4
	assert.InDelta(t, 3.5, loss.Item(), 1e-6)

	grads := backend.Backward(loss)
	// 2 * (p - t) / 4
	assert.Equal(t, []float32{0, 0.5, 1, 1.5}, grads[p].Data())

	assert.Panics(t, func() { backend.MSE(p, tensor.Zeros(tensor.Shape{4})) })
}

func TestBackward_AccumulatesSharedInputs(t *testing.T) {
	backend := autodiff.New()
	backend.Tape().StartRecording()

	// The same weight is used twice: y = W(Wx).
	x := fromSlice(t, []float32{1, 2}, tensor.Shape{1, 2})
	w := fromSlice(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})

	h := backend.Linear(x, w, nil)
	y := backend.Linear(h, w, nil)
	grads := backend.Tape().Backward(tensor.Ones(y.Shape()))

	// dL/dW = g^T h + (g W)^T x with g = ones and W = I.
	assert.Equal(t, []float32{2, 4, 2, 4}, grads[w].Data())
}

func TestBackward_NonScalarLossPanics(t *testing.T) {
	backend := autodiff.New()
	assert.Panics(t, func() { backend.Backward(tensor.Zeros(tensor.Shape{2})) })
}
