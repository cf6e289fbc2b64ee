// Package tensor implements the dense float32 tensor used by the autoencoder.
//
// Tensors are row-major and always live in host memory. Reshape returns a
// view that shares storage with its source; every other operation allocates.
// Matrix products are delegated to gonum's BLAS (see matmul.go).
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a row-major multi-dimensional float32 array.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4})
//	t.Set(1.5, 0, 2)
//	v := t.At(0, 2) // 1.5
type Tensor struct {
	shape Shape
	data  []float32
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	t := &Tensor{shape: shape.Clone(), data: make([]float32, len(data))}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying storage.
//
// Writes through the returned slice mutate the tensor and every view that
// shares its storage.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Item returns the value of a single-element tensor.
func (t *Tensor) Item() float32 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("Item: tensor has %d elements, want 1", len(t.data)))
	}
	return t.data[0]
}

// At returns the element at the given indices.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.offset(indices)]
}

// Set writes value at the given indices.
func (t *Tensor) Set(value float32, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: got %d indices for %d-d tensor", len(indices), len(t.shape)))
	}
	strides := t.shape.ComputeStrides()
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		off += idx * strides[i]
	}
	return off
}

// Reshape returns a view of t with a new shape.
//
// A single dimension may be -1, in which case it is inferred from the
// remaining ones. Panics if the element counts differ.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	shape := make(Shape, len(dims))
	copy(shape, dims)

	infer := -1
	known := 1
	for i, d := range shape {
		if d == -1 {
			if infer >= 0 {
				panic("Reshape: only one dimension can be inferred")
			}
			infer = i
			continue
		}
		known *= d
	}
	if infer >= 0 {
		if known == 0 || len(t.data)%known != 0 {
			panic(fmt.Sprintf("Reshape: cannot infer dimension for %d elements into %v", len(t.data), dims))
		}
		shape[infer] = len(t.data) / known
	}

	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("Reshape: cannot reshape %v (%d elements) into %v", t.shape, len(t.data), shape))
	}

	return &Tensor{shape: shape, data: t.data}
}

// Clone returns a deep copy of t.
func (t *Tensor) Clone() *Tensor {
	data := make([]float32, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tensor%v", []int(t.shape))
	if len(t.data) <= 8 {
		fmt.Fprintf(&b, " %v", t.data)
	}
	return b.String()
}
