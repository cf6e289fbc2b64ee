// Package config loads autoencoder run files.
//
// A run file is YAML:
//
//	model:
//	  latent_size: 32
//	  layers: 3
//	  latent_activation: sigmoid
//	training:
//	  lr: 0.001
//	  epochs: 10
//	  batch_size: 64
//	  optimizer: adam
//	  seed: 42
//	data:
//	  source: idx
//	  dir: ./data
//	  max_samples: 0
//	  validation_ratio: 0.2
//	tracking:
//	  enabled: true
//	  path: metrics.jsonl
//
// Missing fields keep the values from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Data sources.
const (
	SourceIDX       = "idx"
	SourceCSV       = "csv"
	SourceEmbedded  = "embedded"
	SourceSynthetic = "synthetic"
)

// Config is a complete run description.
type Config struct {
	Model    Model    `yaml:"model"`
	Training Training `yaml:"training"`
	Data     Data     `yaml:"data"`
	Tracking Tracking `yaml:"tracking"`
}

// Model selects the architecture.
type Model struct {
	LatentSize int `yaml:"latent_size"`
	Layers     int `yaml:"layers"`

	// LatentActivation is "", "none", "relu", "sigmoid" or "tanh".
	LatentActivation string `yaml:"latent_activation"`
}

// Training holds optimizer and loop settings.
type Training struct {
	LR        float32 `yaml:"lr"`
	Epochs    int     `yaml:"epochs"`
	BatchSize int     `yaml:"batch_size"`
	Optimizer string  `yaml:"optimizer"`
	Seed      uint64  `yaml:"seed"` // 0 leaves initialization and shuffling unseeded
}

// Data selects where images come from.
type Data struct {
	Source          string  `yaml:"source"`
	Dir             string  `yaml:"dir"`  // IDX directory
	Path            string  `yaml:"path"` // CSV file
	MaxSamples      int     `yaml:"max_samples"`
	ValidationRatio float64 `yaml:"validation_ratio"`
}

// Tracking enables per-epoch metrics written as JSON lines to Path.
type Tracking struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the settings used when no run file is given.
func Default() Config {
	return Config{
		Model: Model{
			LatentSize: 32,
			Layers:     3,
		},
		Training: Training{
			LR:        0.001,
			Epochs:    10,
			BatchSize: 64,
			Optimizer: "adam",
		},
		Data: Data{
			Source:          SourceEmbedded,
			Dir:             "./data",
			ValidationRatio: 0.2,
		},
		Tracking: Tracking{
			Path: "metrics.jsonl",
		},
	}
}

// Load reads the run file at path on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Architecture limits that depend on the
// input size are left to the model constructor.
func (c *Config) Validate() error {
	switch {
	case c.Model.LatentSize <= 0:
		return fmt.Errorf("model.latent_size must be positive, got %d", c.Model.LatentSize)
	case c.Model.Layers <= 0:
		return fmt.Errorf("model.layers must be positive, got %d", c.Model.Layers)
	case c.Training.LR <= 0:
		return fmt.Errorf("training.lr must be positive, got %g", c.Training.LR)
	case c.Training.Epochs < 0:
		return fmt.Errorf("training.epochs must be non-negative, got %d", c.Training.Epochs)
	case c.Training.BatchSize <= 0:
		return fmt.Errorf("training.batch_size must be positive, got %d", c.Training.BatchSize)
	case c.Data.ValidationRatio <= 0 || c.Data.ValidationRatio >= 1:
		return fmt.Errorf("data.validation_ratio must be in (0, 1), got %g", c.Data.ValidationRatio)
	case c.Tracking.Enabled && c.Tracking.Path == "":
		return fmt.Errorf("tracking.path is required when tracking is enabled")
	}

	switch strings.ToLower(c.Model.LatentActivation) {
	case "", "none", "relu", "sigmoid", "tanh":
	default:
		return fmt.Errorf("model.latent_activation: unknown activation %q", c.Model.LatentActivation)
	}

	switch c.Data.Source {
	case SourceIDX, SourceEmbedded, SourceSynthetic:
	case SourceCSV:
		if c.Data.Path == "" {
			return fmt.Errorf("data.path is required for the csv source")
		}
	default:
		return fmt.Errorf("data.source: unknown source %q", c.Data.Source)
	}
	return nil
}
