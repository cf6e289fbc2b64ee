// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the float32 row-major tensors the autoencoder
// consumes and produces.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{64, 1, 28, 28})
//	y, err := tensor.FromSlice(pixels, tensor.Shape{1, 1, 28, 28})
package tensor

import "github.com/born-ml/autoencoder/internal/tensor"

// Tensor is a dense float32 tensor stored in row-major order.
type Tensor = tensor.Tensor

// Shape lists the size of each dimension.
type Shape = tensor.Shape

// FromSlice creates a tensor of the given shape holding a copy of data.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}
