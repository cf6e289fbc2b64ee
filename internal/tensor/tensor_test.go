package tensor_test

import (
	"testing"

	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, float32(6), x.At(1, 2))
	assert.Equal(t, float32(2), x.At(0, 1))
}

func TestFromSlice_Errors(t *testing.T) {
	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2})
	assert.Error(t, err)

	_, err = tensor.FromSlice(nil, tensor.Shape{0, 3})
	assert.Error(t, err)
}

func TestFromSlice_Copies(t *testing.T) {
	src := []float32{1, 2}
	x, err := tensor.FromSlice(src, tensor.Shape{2})
	require.NoError(t, err)

	src[0] = 42
	assert.Equal(t, float32(1), x.At(0))
}

func TestReshape_SharesStorage(t *testing.T) {
	x := tensor.Zeros(tensor.Shape{2, 1, 28, 28})
	flat := x.Reshape(2, -1)

	assert.Equal(t, tensor.Shape{2, 784}, flat.Shape())

	flat.Set(3, 1, 783)
	assert.Equal(t, float32(3), x.At(1, 0, 27, 27))
}

func TestReshape_Panics(t *testing.T) {
	x := tensor.Zeros(tensor.Shape{2, 3})

	assert.Panics(t, func() { x.Reshape(4, 2) })
	assert.Panics(t, func() { x.Reshape(-1, -1) })
	assert.Panics(t, func() { x.Reshape(4, -1) })
}

func TestClone(t *testing.T) {
	x := tensor.Full(tensor.Shape{3}, 2)
	c := x.Clone()
	c.Set(7, 0)

	assert.Equal(t, float32(2), x.At(0))
	assert.Equal(t, float32(7), c.At(0))
}

func TestShape(t *testing.T) {
	s := tensor.Shape{2, 3, 4}

	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())
	assert.True(t, s.Equal(tensor.Shape{2, 3, 4}))
	assert.False(t, s.Equal(tensor.Shape{2, 3}))
	assert.Equal(t, 1, tensor.Shape{}.NumElements())
	assert.Error(t, tensor.Shape{2, -1}.Validate())
}

func TestItem(t *testing.T) {
	assert.Equal(t, float32(5), tensor.Full(tensor.Shape{1}, 5).Item())
	assert.Panics(t, func() { tensor.Zeros(tensor.Shape{2}).Item() })
}
