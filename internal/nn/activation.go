package nn

import (
	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU struct {
	backend *autodiff.Backend
}

// NewReLU creates a new ReLU activation module.
func NewReLU(backend *autodiff.Backend) *ReLU {
	return &ReLU{backend: backend}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return r.backend.ReLU(input)
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

func (r *ReLU) String() string { return "ReLU()" }

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// Squashes values to (0, 1); a natural latent activation when codes should
// stay bounded.
type Sigmoid struct {
	backend *autodiff.Backend
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid(backend *autodiff.Backend) *Sigmoid {
	return &Sigmoid{backend: backend}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	return s.backend.Sigmoid(input)
}

// Parameters returns an empty slice (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters() []*Parameter {
	return nil
}

func (s *Sigmoid) String() string { return "Sigmoid()" }

// Tanh is a hyperbolic tangent activation module.
//
// Squashes values to the range (-1, 1).
type Tanh struct {
	backend *autodiff.Backend
}

// NewTanh creates a new Tanh activation module.
func NewTanh(backend *autodiff.Backend) *Tanh {
	return &Tanh{backend: backend}
}

// Forward applies Tanh activation.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	return t.backend.Tanh(input)
}

// Parameters returns an empty slice (Tanh has no trainable parameters).
func (t *Tanh) Parameters() []*Parameter {
	return nil
}

func (t *Tanh) String() string { return "Tanh()" }
