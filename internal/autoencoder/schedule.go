package autoencoder

import "fmt"

// EncoderSchedule returns the output width of each encoder layer, from the
// first hidden layer down to and including latentSize.
//
// The total reduction inputSize-latentSize rarely divides evenly by layers.
// Every layer removes the integer part of the per-layer reduction, and the
// fractional part is carried from layer to layer: once the carry reaches a
// whole feature that layer removes one extra feature. The final width is
// pinned to latentSize regardless of rounding.
//
// Example:
//
//	EncoderSchedule(784, 6, 4) // [590 395 201 6]
//
// Returns ErrInvalidArchitecture unless 0 < latentSize < inputSize and
// layers > 0.
func EncoderSchedule(inputSize, latentSize, layers int) ([]int, error) {
	if err := validateSizes(inputSize, latentSize, layers); err != nil {
		return nil, err
	}

	reduction := inputSize - latentSize
	step := reduction / layers
	remainder := float64(reduction)/float64(layers) - float64(step)

	schedule := make([]int, 0, layers)
	width := inputSize
	carry := 0.0
	for i := 0; i < layers-1; i++ {
		reduceBy := step
		carry += remainder
		if carry >= 1 {
			carry--
			reduceBy++
		}

		width -= reduceBy
		schedule = append(schedule, width)
	}

	return append(schedule, latentSize), nil
}

// DecoderSchedule mirrors an encoder schedule: the encoder widths in reverse
// order without the latent width, followed by inputSize.
//
// Example:
//
//	DecoderSchedule([]int{590, 395, 201, 6}, 784) // [201 395 590 784]
func DecoderSchedule(encoder []int, inputSize int) []int {
	decoder := make([]int, 0, len(encoder))
	for i := len(encoder) - 2; i >= 0; i-- {
		decoder = append(decoder, encoder[i])
	}
	return append(decoder, inputSize)
}

func validateSizes(inputSize, latentSize, layers int) error {
	switch {
	case layers <= 0:
		return fmt.Errorf("%w: number of layers must be positive, got %d", ErrInvalidArchitecture, layers)
	case latentSize <= 0:
		return fmt.Errorf("%w: latent size must be positive, got %d", ErrInvalidArchitecture, latentSize)
	case latentSize >= inputSize:
		return fmt.Errorf("%w: latent size %d must be smaller than input size %d",
			ErrInvalidArchitecture, latentSize, inputSize)
	}
	return nil
}
