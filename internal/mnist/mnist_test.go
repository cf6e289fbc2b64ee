package mnist

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idxImages(t *testing.T, images [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := [4]uint32{imagesMagic, uint32(len(images)), Rows, Cols}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, img := range images {
		buf.Write(img)
	}
	return buf.Bytes()
}

func idxLabels(t *testing.T, labels []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := [2]uint32{labelsMagic, uint32(len(labels))}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	buf.Write(labels)
	return buf.Bytes()
}

func gz(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func testImages(n int) [][]byte {
	images := make([][]byte, n)
	for i := range images {
		images[i] = make([]byte, ImageSize)
		images[i][0] = 255
		images[i][1] = byte(i)
	}
	return images
}

func TestReadIDX_BadMagic(t *testing.T) {
	data := idxLabels(t, make([]byte, 16))
	_, _, _, err := readIDXImages(bytes.NewReader(data))
	assert.ErrorContains(t, err, "invalid magic number")

	_, err = readIDXLabels(bytes.NewReader(idxImages(t, nil)))
	assert.ErrorContains(t, err, "invalid magic number")
}

func TestReadIDX_Truncated(t *testing.T) {
	data := idxImages(t, testImages(2))
	_, _, _, err := readIDXImages(bytes.NewReader(data[:len(data)-10]))
	assert.Error(t, err)
}

func TestLoadIDX(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-images-idx3-ubyte"), idxImages(t, testImages(3)), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-labels-idx1-ubyte"), idxLabels(t, []byte{7, 1, 4}), 0o600))

	d, err := LoadIDX(dir, true, 0)
	require.NoError(t, err)
	require.Equal(t, 3, d.NumSamples())
	assert.Equal(t, []int32{7, 1, 4}, d.Labels)
	assert.Equal(t, float32(1), d.Images[0][0])
	assert.InDelta(t, 2.0/255.0, d.Images[2][1], 1e-7)

	d, err = LoadIDX(dir, true, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NumSamples())

	_, err = LoadIDX(dir, false, 0)
	assert.Error(t, err, "test split files are absent")
}

func TestLoadIDX_Gzip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-images-idx3-ubyte.gz"), gz(t, idxImages(t, testImages(2))), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-labels-idx1-ubyte.gz"), gz(t, idxLabels(t, []byte{3, 9})), 0o600))

	d, err := LoadIDX(dir, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 9}, d.Labels)
}

func TestLoadIDX_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-images-idx3-ubyte"), idxImages(t, testImages(2)), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-labels-idx1-ubyte"), idxLabels(t, []byte{1}), 0o600))

	_, err := LoadIDX(dir, true, 0)
	assert.ErrorContains(t, err, "image count")
}

func csvRow(label int, first int) string {
	fields := make([]string, ImageSize+1)
	fields[0] = strconv.Itoa(label)
	for i := 1; i <= ImageSize; i++ {
		fields[i] = "0"
	}
	fields[1] = strconv.Itoa(first)
	return strings.Join(fields, ",")
}

func TestReadCSV(t *testing.T) {
	header := "label"
	for i := 0; i < ImageSize; i++ {
		header += ",pixel" + strconv.Itoa(i)
	}
	input := header + "\n" + csvRow(5, 255) + "\n" + csvRow(0, 51) + "\n"

	d, err := ReadCSV(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Equal(t, 2, d.NumSamples())
	assert.Equal(t, []int32{5, 0}, d.Labels)
	assert.Equal(t, float32(1), d.Images[0][0])
	assert.InDelta(t, 0.2, d.Images[1][0], 1e-6)

	d, err = ReadCSV(strings.NewReader(input), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumSamples())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "header only", input: "label,pixel0\n"},
		{name: "short row", input: "label,pixel0\n3,0\n"},
		{name: "bad label", input: "h\n" + strings.Replace(csvRow(1, 0), "1", "x", 1) + "\n"},
		{name: "label out of range", input: "h\n" + csvRow(12, 0) + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), 0)
			assert.Error(t, err)
		})
	}
}

func TestSynthetic(t *testing.T) {
	d := Synthetic(25)
	require.Equal(t, 25, d.NumSamples())
	assert.Equal(t, int32(3), d.Labels[13])
	for _, img := range d.Images {
		require.Len(t, img, ImageSize)
	}
	assert.Equal(t, float32(0.8), d.Images[0][5])
	assert.Zero(t, d.Images[0][0])
}

func TestSplit(t *testing.T) {
	d := Synthetic(10)
	train, val := d.Split(0.2)
	assert.Equal(t, 8, train.NumSamples())
	assert.Equal(t, 2, val.NumSamples())
	assert.Equal(t, d.Labels[8:], val.Labels)
}

func TestBatches(t *testing.T) {
	d := Synthetic(10)

	batches, err := d.Batches(4, nil)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, tensor.Shape{4, 1, Rows, Cols}, batches[0].Shape())
	assert.Equal(t, tensor.Shape{2, 1, Rows, Cols}, batches[2].Shape())
	assert.Equal(t, d.Images[1], batches[0].Data()[ImageSize:2*ImageSize])

	_, err = d.Batches(0, nil)
	assert.Error(t, err)

	empty, err := (&Dataset{}).Batches(4, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBatches_ShuffleKeepsSamples(t *testing.T) {
	d := Synthetic(10)
	batches, err := d.Batches(10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.Len(t, batches, 1)

	var sum, want float32
	for _, v := range batches[0].Data() {
		sum += v
	}
	for _, img := range d.Images {
		for _, v := range img {
			want += v
		}
	}
	assert.InDelta(t, want, sum, 1e-3)
}
