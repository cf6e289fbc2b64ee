package mnist

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/autoencoder/internal/tensor"
)

// Batches splits the dataset into image tensors of shape [batch, 1, 28, 28].
//
// The last batch may be smaller if the dataset size is not a multiple of
// batchSize. When rng is non-nil the sample order is shuffled with it.
func (d *Dataset) Batches(batchSize int, rng *rand.Rand) ([]*tensor.Tensor, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	numSamples := d.NumSamples()
	if numSamples == 0 {
		return nil, nil
	}

	indices := make([]int, numSamples)
	for i := range indices {
		indices[i] = i
	}
	if rng != nil {
		rng.Shuffle(numSamples, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	batches := make([]*tensor.Tensor, 0, (numSamples+batchSize-1)/batchSize)
	for start := 0; start < numSamples; start += batchSize {
		end := min(start+batchSize, numSamples)

		batch := tensor.Zeros(tensor.Shape{end - start, 1, Rows, Cols})
		data := batch.Data()
		for j := start; j < end; j++ {
			img := d.Images[indices[j]]
			if len(img) != ImageSize {
				return nil, fmt.Errorf("sample %d has %d pixels, want %d", indices[j], len(img), ImageSize)
			}
			copy(data[(j-start)*ImageSize:(j-start+1)*ImageSize], img)
		}
		batches = append(batches, batch)
	}

	return batches, nil
}
