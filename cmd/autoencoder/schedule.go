package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/autoencoder/internal/autoencoder"
)

func runSchedule(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	fs.SetOutput(stdout)
	input := fs.Int("input", autoencoder.MNISTChannels*autoencoder.MNISTHeight*autoencoder.MNISTWidth, "Input dimensionality")
	latent := fs.Int("latent", 32, "Latent dimensionality")
	layers := fs.Int("layers", 3, "Number of encoder layers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	encoder, err := autoencoder.EncoderSchedule(*input, *latent, *layers)
	if err != nil {
		return err
	}
	decoder := autoencoder.DecoderSchedule(encoder, *input)

	fmt.Fprintf(stdout, "Encoder: %d -> %v\n", *input, encoder)
	fmt.Fprintf(stdout, "Decoder: %d -> %v\n", *latent, decoder)
	return nil
}
