// Package autoencoder builds symmetric feed-forward autoencoders whose layer
// widths shrink from the input size to a latent size over a fixed number of
// layers and grow back again.
//
// The encoder is Flatten followed by Linear layers with ReLU between them;
// an optional latent activation follows the last encoder layer. The decoder
// mirrors the encoder widths with ReLU between its Linear layers and ends by
// restoring the input image shape.
package autoencoder

import (
	"fmt"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/tensor"
)

// MNIST image geometry.
const (
	MNISTChannels = 1
	MNISTHeight   = 28
	MNISTWidth    = 28
)

// Config describes an autoencoder architecture.
type Config struct {
	// ImageShape is the per-sample input shape (channels, height, width).
	// Defaults to the MNIST shape (1, 28, 28).
	ImageShape []int

	// LatentSize is the width of the narrowest layer.
	LatentSize int

	// Layers is the number of Linear layers in the encoder, and therefore
	// in the decoder.
	Layers int

	// LatentActivation, when non-nil, is applied to the encoder output.
	LatentActivation nn.Module
}

// Model is a feed-forward autoencoder.
//
// Schedules and pipelines are fixed at construction; only the parameters of
// the Linear layers change during training.
type Model struct {
	imageShape      []int
	inputSize       int
	latentSize      int
	layers          int
	encoderSchedule []int
	decoderSchedule []int
	encoder         *nn.Sequential
	decoder         *nn.Sequential
}

// NewMNIST builds an autoencoder for 28×28 single-channel images.
//
// latentActivation may be nil.
func NewMNIST(latentSize, layers int, latentActivation nn.Module, backend *autodiff.Backend) (*Model, error) {
	return New(Config{
		ImageShape:       []int{MNISTChannels, MNISTHeight, MNISTWidth},
		LatentSize:       latentSize,
		Layers:           layers,
		LatentActivation: latentActivation,
	}, backend)
}

// New builds an autoencoder from cfg.
//
// Returns ErrInvalidArchitecture if the latent size is not smaller than the
// flattened image size, or if either size or the layer count is not positive.
func New(cfg Config, backend *autodiff.Backend) (*Model, error) {
	imageShape := cfg.ImageShape
	if len(imageShape) == 0 {
		imageShape = []int{MNISTChannels, MNISTHeight, MNISTWidth}
	}
	if err := tensor.Shape(imageShape).Validate(); err != nil {
		return nil, fmt.Errorf("%w: image shape %v: %v", ErrInvalidArchitecture, imageShape, err)
	}
	inputSize := tensor.Shape(imageShape).NumElements()

	encoderSchedule, err := EncoderSchedule(inputSize, cfg.LatentSize, cfg.Layers)
	if err != nil {
		return nil, err
	}
	decoderSchedule := DecoderSchedule(encoderSchedule, inputSize)

	m := &Model{
		imageShape:      append([]int(nil), imageShape...),
		inputSize:       inputSize,
		latentSize:      cfg.LatentSize,
		layers:          cfg.Layers,
		encoderSchedule: encoderSchedule,
		decoderSchedule: decoderSchedule,
	}

	m.encoder = nn.NewSequential(nn.NewFlatten(backend))
	appendStack(m.encoder, inputSize, encoderSchedule, backend)
	if cfg.LatentActivation != nil {
		m.encoder.Add(cfg.LatentActivation)
	}

	m.decoder = nn.NewSequential()
	appendStack(m.decoder, cfg.LatentSize, decoderSchedule, backend)
	m.decoder.Add(nn.NewUnflatten(backend, m.imageShape...))

	return m, nil
}

// appendStack adds Linear layers of the given widths to seq, with a ReLU
// after every layer but the last.
func appendStack(seq *nn.Sequential, in int, widths []int, backend *autodiff.Backend) {
	for i, out := range widths {
		seq.Add(nn.NewLinear(in, out, backend))
		if i < len(widths)-1 {
			seq.Add(nn.NewReLU(backend))
		}
		in = out
	}
}

// Forward reconstructs a batch of images: [batch, C, H, W] -> [batch, C, H, W].
//
// Panics if the per-sample shape does not match the model's image shape.
func (m *Model) Forward(input *tensor.Tensor) *tensor.Tensor {
	return m.decoder.Forward(m.Encode(input))
}

// Encode maps a batch of images to latent codes: [batch, C, H, W] -> [batch, latent].
func (m *Model) Encode(input *tensor.Tensor) *tensor.Tensor {
	if err := m.CheckInput(input); err != nil {
		panic(err.Error())
	}
	return m.encoder.Forward(input)
}

// Decode maps latent codes back to images: [batch, latent] -> [batch, C, H, W].
func (m *Model) Decode(latent *tensor.Tensor) *tensor.Tensor {
	return m.decoder.Forward(latent)
}

// CheckInput reports whether input is a batch of images the model accepts.
func (m *Model) CheckInput(input *tensor.Tensor) error {
	shape := input.Shape()
	if len(shape) != len(m.imageShape)+1 || !tensor.Shape(shape[1:]).Equal(m.imageShape) {
		return fmt.Errorf("autoencoder: expected input [batch %s], got %v", shapeSuffix(m.imageShape), shape)
	}
	return nil
}

func shapeSuffix(dims []int) string {
	s := ""
	for _, d := range dims {
		s += fmt.Sprintf(" %d", d)
	}
	return s
}

// Parameters returns the encoder parameters followed by the decoder parameters.
func (m *Model) Parameters() []*nn.Parameter {
	return append(m.encoder.Parameters(), m.decoder.Parameters()...)
}

// Encoder returns the encoder pipeline.
func (m *Model) Encoder() *nn.Sequential { return m.encoder }

// Decoder returns the decoder pipeline.
func (m *Model) Decoder() *nn.Sequential { return m.decoder }

// EncoderSchedule returns a copy of the encoder layer widths.
func (m *Model) EncoderSchedule() []int { return append([]int(nil), m.encoderSchedule...) }

// DecoderSchedule returns a copy of the decoder layer widths.
func (m *Model) DecoderSchedule() []int { return append([]int(nil), m.decoderSchedule...) }

// InputSize returns the flattened image size.
func (m *Model) InputSize() int { return m.inputSize }

// LatentSize returns the latent width.
func (m *Model) LatentSize() int { return m.latentSize }

// Layers returns the number of Linear layers per pipeline.
func (m *Model) Layers() int { return m.layers }

// ImageShape returns a copy of the per-sample image shape.
func (m *Model) ImageShape() []int { return append([]int(nil), m.imageShape...) }

func (m *Model) String() string {
	return fmt.Sprintf("MNISTAutoencoder:\n    Latent size: %d, Layers count: %d", m.latentSize, m.layers)
}
