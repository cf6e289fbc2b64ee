// Package mnist loads 28×28 grayscale digit images and batches them into
// tensors of shape [batch, 1, 28, 28] with pixels scaled to [0, 1].
//
// Sources:
//   - LoadIDX: the official IDX files (optionally gzip-compressed)
//   - LoadCSV: Kaggle-style CSV (label,pixel0,...,pixel783)
//   - LoadEmbedded: the copy of MNIST bundled with github.com/unixpickle/mnist
//   - Synthetic: a tiny generated set for smoke tests
package mnist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/unixpickle/mnist"
)

// Image geometry.
const (
	Rows      = 28
	Cols      = 28
	ImageSize = Rows * Cols
)

// Dataset holds images and labels.
type Dataset struct {
	Images [][]float32 // [num_samples][784], values in [0, 1]
	Labels []int32     // [num_samples]
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// Split splits the dataset into two parts, the second holding
// validationRatio of the samples.
func (d *Dataset) Split(validationRatio float64) (train, validation *Dataset) {
	splitIdx := int(float64(d.NumSamples()) * (1.0 - validationRatio))

	return &Dataset{
			Images: d.Images[:splitIdx],
			Labels: d.Labels[:splitIdx],
		}, &Dataset{
			Images: d.Images[splitIdx:],
			Labels: d.Labels[splitIdx:],
		}
}

// LoadIDX loads MNIST from official IDX binary files in dataDir.
//
// Expected files (each may also carry a .gz suffix):
//   - train-images-idx3-ubyte, train-labels-idx1-ubyte (train == true)
//   - t10k-images-idx3-ubyte, t10k-labels-idx1-ubyte (train == false)
//
// maxSamples limits the number of samples loaded (0 = load all).
func LoadIDX(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}

	imagesRaw, rows, cols, err := loadIDXImages(findIDX(dataDir, prefix+"-images-idx3-ubyte"))
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	if rows != Rows || cols != Cols {
		return nil, fmt.Errorf("unexpected image size %dx%d, want %dx%d", rows, cols, Rows, Cols)
	}

	labelsRaw, err := loadIDXLabels(findIDX(dataDir, prefix+"-labels-idx1-ubyte"))
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(imagesRaw), len(labelsRaw))
	}

	n := limit(len(imagesRaw), maxSamples)
	d := &Dataset{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		d.Images[i] = make([]float32, ImageSize)
		for j, px := range imagesRaw[i] {
			d.Images[i][j] = float32(px) / 255.0
		}
		d.Labels[i] = int32(labelsRaw[i])
	}
	return d, nil
}

// findIDX returns the path of name in dir, preferring the uncompressed file.
func findIDX(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, gzErr := os.Stat(path + ".gz"); gzErr == nil {
			return path + ".gz"
		}
	}
	return path
}

func loadIDXImages(filename string) ([][]byte, int, int, error) {
	f, err := openIDX(filename)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()
	return readIDXImages(f)
}

func loadIDXLabels(filename string) ([]byte, error) {
	f, err := openIDX(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readIDXLabels(f)
}

// LoadCSV loads MNIST data from a CSV file.
//
// CSV Format (Kaggle-style), header row first:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
func LoadCSV(filename string, maxSamples int) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, maxSamples)
}

// ReadCSV parses Kaggle-style MNIST CSV from r. See LoadCSV.
func ReadCSV(r io.Reader, maxSamples int) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row length is checked below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing header")
	}

	records = records[1:]
	n := limit(len(records), maxSamples)
	d := &Dataset{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
	}

	for i, record := range records[:n] {
		if len(record) != ImageSize+1 {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), ImageSize+1)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 || label > 9 {
			return nil, fmt.Errorf("label out of range [0, 9] at row %d: %d", i+1, label)
		}
		d.Labels[i] = int32(label)

		d.Images[i] = make([]float32, ImageSize)
		for j := 0; j < ImageSize; j++ {
			pixel, err := strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("invalid pixel at row %d, column %d: %w", i+1, j+1, err)
			}
			d.Images[i][j] = float32(pixel) / 255.0
		}
	}

	return d, nil
}

// LoadEmbedded returns the MNIST copy bundled with github.com/unixpickle/mnist.
//
// maxSamples limits the number of samples returned (0 = all).
func LoadEmbedded(train bool, maxSamples int) *Dataset {
	var set mnist.DataSet
	if train {
		set = mnist.LoadTrainingDataSet()
	} else {
		set = mnist.LoadTestingDataSet()
	}

	intensities := set.IntensityVectors()
	n := limit(len(intensities), maxSamples)
	d := &Dataset{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		d.Images[i] = make([]float32, len(intensities[i]))
		for j, v := range intensities[i] {
			d.Images[i][j] = float32(v)
		}
		d.Labels[i] = int32(set.Samples[i].Label)
	}
	return d
}

// Synthetic creates n synthetic samples for smoke runs without real data.
//
// Sample i is a bright horizontal band whose position depends on i%10.
// This is NOT realistic MNIST data, just enough to exercise the pipeline.
func Synthetic(n int) *Dataset {
	d := &Dataset{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
	}

	for i := 0; i < n; i++ {
		digit := i % 10
		d.Images[i] = make([]float32, ImageSize)
		d.Labels[i] = int32(digit)

		startRow := digit * 2
		for row := startRow; row < startRow+8 && row < Rows; row++ {
			for col := 5; col < 23; col++ {
				d.Images[i][row*Cols+col] = 0.8
			}
		}
	}

	return d
}

func limit(n, maxSamples int) int {
	if maxSamples > 0 && n > maxSamples {
		return maxSamples
	}
	return n
}
