package nn

import (
	"fmt"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/tensor"
)

// Flatten collapses every dimension after the batch dimension:
// [batch, d1, d2, ...] -> [batch, d1*d2*...].
type Flatten struct {
	backend *autodiff.Backend
}

// NewFlatten creates a new Flatten module.
func NewFlatten(backend *autodiff.Backend) *Flatten {
	return &Flatten{backend: backend}
}

// Forward flattens input, keeping the batch dimension.
func (f *Flatten) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("Flatten.Forward: expected at least 2D input, got shape %v", shape))
	}
	return f.backend.Reshape(input, shape[0], -1)
}

// Parameters returns nil.
func (f *Flatten) Parameters() []*Parameter {
	return nil
}

func (f *Flatten) String() string { return "Flatten()" }

// Unflatten expands the feature dimension of a [batch, features] tensor into
// dims: [batch, features] -> [batch, dims...].
type Unflatten struct {
	dims    []int
	backend *autodiff.Backend
}

// NewUnflatten creates a new Unflatten module producing [batch, dims...].
func NewUnflatten(backend *autodiff.Backend, dims ...int) *Unflatten {
	d := make([]int, len(dims))
	copy(d, dims)
	return &Unflatten{dims: d, backend: backend}
}

// Forward reshapes input to [batch, dims...].
func (u *Unflatten) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	want := tensor.Shape(u.dims).NumElements()
	if len(shape) != 2 || shape[1] != want {
		panic(fmt.Sprintf("Unflatten.Forward: expected input [batch, %d], got shape %v", want, shape))
	}
	return u.backend.Reshape(input, append([]int{shape[0]}, u.dims...)...)
}

// Parameters returns nil.
func (u *Unflatten) Parameters() []*Parameter {
	return nil
}

func (u *Unflatten) String() string {
	return fmt.Sprintf("Unflatten(dim=-1, unflattened_size=%v)", u.dims)
}
