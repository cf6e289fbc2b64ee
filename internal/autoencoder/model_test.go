package autoencoder_test

import (
	"errors"
	"testing"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/autoencoder"
	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMNIST_ForwardZeroBatch(t *testing.T) {
	model, err := autoencoder.NewMNIST(6, 4, nil, autodiff.New())
	require.NoError(t, err)

	out := model.Forward(tensor.Zeros(tensor.Shape{1, 1, 28, 28}))
	assert.Equal(t, tensor.Shape{1, 1, 28, 28}, out.Shape())
}

func TestNewMNIST_ForwardBatch(t *testing.T) {
	model, err := autoencoder.NewMNIST(16, 3, nn.NewSigmoid(autodiff.New()), autodiff.New())
	require.NoError(t, err)

	x := tensor.Full(tensor.Shape{5, 1, 28, 28}, 0.5)
	assert.Equal(t, tensor.Shape{5, 1, 28, 28}, model.Forward(x).Shape())

	z := model.Encode(x)
	assert.Equal(t, tensor.Shape{5, 16}, z.Shape())
	for _, v := range z.Data() {
		assert.True(t, v > 0 && v < 1, "sigmoid latent out of range: %v", v)
	}
	assert.Equal(t, tensor.Shape{5, 1, 28, 28}, model.Decode(z).Shape())
}

func TestNewMNIST_InvalidArchitecture(t *testing.T) {
	for _, latent := range []int{784, 785, 2000} {
		model, err := autoencoder.NewMNIST(latent, 3, nil, autodiff.New())
		assert.Nil(t, model)
		assert.True(t, errors.Is(err, autoencoder.ErrInvalidArchitecture), "latent %d: got %v", latent, err)
	}
}

func TestNew_InvalidImageShape(t *testing.T) {
	_, err := autoencoder.New(autoencoder.Config{
		ImageShape: []int{1, 0, 28},
		LatentSize: 4,
		Layers:     2,
	}, autodiff.New())
	assert.True(t, errors.Is(err, autoencoder.ErrInvalidArchitecture))
}

func TestModel_Pipelines(t *testing.T) {
	backend := autodiff.New()
	model, err := autoencoder.NewMNIST(6, 4, nil, backend)
	require.NoError(t, err)

	assert.Equal(t, []int{590, 395, 201, 6}, model.EncoderSchedule())
	assert.Equal(t, []int{201, 395, 590, 784}, model.DecoderSchedule())
	assert.Equal(t, 784, model.InputSize())
	assert.Equal(t, 6, model.LatentSize())
	assert.Equal(t, 4, model.Layers())

	// Flatten, then Linear/ReLU pairs with no ReLU after the latent layer.
	enc := model.Encoder()
	require.Equal(t, 1+4+3, enc.Len())
	assert.IsType(t, &nn.Flatten{}, enc.Module(0))
	wantIn := 784
	for i, width := range model.EncoderSchedule() {
		linear, ok := enc.Module(1 + 2*i).(*nn.Linear)
		require.True(t, ok, "module %d should be Linear", 1+2*i)
		assert.Equal(t, wantIn, linear.InFeatures())
		assert.Equal(t, width, linear.OutFeatures())
		if i < 3 {
			assert.IsType(t, &nn.ReLU{}, enc.Module(2+2*i))
		}
		wantIn = width
	}
	assert.IsType(t, &nn.Linear{}, enc.Module(enc.Len()-1))

	// Linear/ReLU pairs, no ReLU after the output layer, then Unflatten.
	dec := model.Decoder()
	require.Equal(t, 4+3+1, dec.Len())
	first := dec.Module(0).(*nn.Linear)
	assert.Equal(t, 6, first.InFeatures())
	last := dec.Module(dec.Len() - 2).(*nn.Linear)
	assert.Equal(t, 784, last.OutFeatures())
	assert.IsType(t, &nn.Unflatten{}, dec.Module(dec.Len()-1))
}

func TestModel_LatentActivationAppended(t *testing.T) {
	backend := autodiff.New()
	tanh := nn.NewTanh(backend)
	model, err := autoencoder.NewMNIST(8, 2, tanh, backend)
	require.NoError(t, err)

	enc := model.Encoder()
	assert.Same(t, tanh, enc.Module(enc.Len()-1))
}

func TestModel_SingleLayer(t *testing.T) {
	model, err := autoencoder.NewMNIST(32, 1, nil, autodiff.New())
	require.NoError(t, err)

	assert.Equal(t, []int{32}, model.EncoderSchedule())
	assert.Equal(t, []int{784}, model.DecoderSchedule())
	// Flatten + Linear; Linear + Unflatten.
	assert.Equal(t, 2, model.Encoder().Len())
	assert.Equal(t, 2, model.Decoder().Len())
	assert.Equal(t, 2*(784*32)+32+784, nn.CountParameters(model.Parameters()))
}

func TestModel_RejectsWrongInputShape(t *testing.T) {
	model, err := autoencoder.NewMNIST(6, 2, nil, autodiff.New())
	require.NoError(t, err)

	bad := tensor.Zeros(tensor.Shape{2, 784})
	assert.Error(t, model.CheckInput(bad))
	assert.Panics(t, func() { model.Forward(bad) })
	assert.NoError(t, model.CheckInput(tensor.Zeros(tensor.Shape{3, 1, 28, 28})))
}

func TestModel_String(t *testing.T) {
	model, err := autoencoder.NewMNIST(6, 4, nil, autodiff.New())
	require.NoError(t, err)
	assert.Equal(t, "MNISTAutoencoder:\n    Latent size: 6, Layers count: 4", model.String())
}

func TestModel_GradientsReachEveryParameter(t *testing.T) {
	backend := autodiff.New()
	model, err := autoencoder.NewMNIST(4, 2, nil, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x := tensor.Full(tensor.Shape{2, 1, 28, 28}, 0.25)
	loss := nn.NewMSELoss(backend).Forward(model.Forward(x), x)
	grads := backend.Backward(loss)

	for _, p := range model.Parameters() {
		g, ok := grads[p.Tensor()]
		require.True(t, ok, "missing gradient for %s", p.Name())
		assert.Equal(t, p.Tensor().Shape(), g.Shape())
	}
}
