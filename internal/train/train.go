// Package train fits a reconstruction model to batches of images by
// minimizing mean squared error between the model output and its input.
//
// Usage:
//
//	backend := autodiff.New()
//	model, _ := autoencoder.NewMNIST(32, 3, nil, backend)
//
//	err := train.Train(ctx, model, backend, trainBatches, train.Config{
//	    LR:     1e-3,
//	    Epochs: 10,
//	})
package train

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/optim"
	"github.com/born-ml/autoencoder/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrMissingEvaluationData is returned when tracking is enabled without
	// both validation and test batches.
	ErrMissingEvaluationData = errors.New("train: tracking requires validation and test batches")

	// ErrBatchShape is returned when a batch does not match the model input shape.
	ErrBatchShape = errors.New("train: malformed batch shape")

	// ErrNoBatches is returned when evaluating over an empty batch source.
	ErrNoBatches = errors.New("train: no batches")
)

// Model is a reconstruction model trained against its own input.
type Model interface {
	nn.Module

	// CheckInput reports whether x is a batch the model accepts.
	CheckInput(x *tensor.Tensor) error
}

// Config controls a training run.
type Config struct {
	LR     float32 // Learning rate (default: 0.001)
	Epochs int     // Number of passes over the training batches

	// Optimizer selects the update rule by name: "adam" (default) or "sgd".
	Optimizer string

	// Tracking enables per-epoch metrics: average training loss plus
	// validation and test loss. Validation and Test are then required.
	Tracking   bool
	Validation []*tensor.Tensor
	Test       []*tensor.Tensor

	// Tracker receives per-epoch metrics when Tracking is set. May be nil.
	Tracker Tracker

	// Progress receives the progress bars and epoch summaries.
	// nil disables progress output.
	Progress io.Writer
}

func (c *Config) validate() error {
	if c.Epochs < 0 {
		return fmt.Errorf("train: epochs must be non-negative, got %d", c.Epochs)
	}
	if c.LR < 0 {
		return fmt.Errorf("train: learning rate must be non-negative, got %g", c.LR)
	}
	if c.Tracking && (len(c.Validation) == 0 || len(c.Test) == 0) {
		return ErrMissingEvaluationData
	}
	return nil
}

// Train runs cfg.Epochs epochs over batches. Each batch is reconstructed,
// scored with MSE against itself, and followed by one optimizer step.
//
// backend must be the backend the model's layers were built with.
// Training stops at the first malformed batch (ErrBatchShape) or when ctx
// is cancelled between batches.
func Train(ctx context.Context, model Model, backend *autodiff.Backend, batches []*tensor.Tensor, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	optimizer, err := optim.New(cfg.Optimizer, model.Parameters(), cfg.LR)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	loss := nn.NewMSELoss(backend)
	bar := newProgress(cfg.Progress, cfg.Epochs)

	tape := backend.Tape()
	wasRecording := tape.IsRecording()
	defer func() {
		tape.Clear()
		if !wasRecording {
			tape.StopRecording()
		}
	}()

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		bar.startEpoch(epoch, len(batches))
		losses := make([]float64, 0, len(batches))

		for i, batch := range batches {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := model.CheckInput(batch); err != nil {
				return fmt.Errorf("%w: epoch %d batch %d: %v", ErrBatchShape, epoch, i, err)
			}

			tape.StartRecording()
			reconstructed := model.Forward(batch)
			l := loss.Forward(reconstructed, batch)
			grads := backend.Backward(l)

			optimizer.Step(grads)
			optimizer.ZeroGrad()
			tape.Clear()

			losses = append(losses, float64(l.Item()))
			bar.step(l.Item())
		}
		bar.finishEpoch()

		if cfg.Tracking {
			m, err := epochMetrics(model, backend, epoch, losses, cfg)
			if err != nil {
				return err
			}
			bar.summary(m)
			if cfg.Tracker != nil {
				if err := cfg.Tracker.Log(m); err != nil {
					return fmt.Errorf("train: tracker: %w", err)
				}
			}
		}
	}

	return nil
}

func epochMetrics(model Model, backend *autodiff.Backend, epoch int, losses []float64, cfg Config) (Metrics, error) {
	m := Metrics{Epoch: epoch}
	if len(losses) > 0 {
		m.Loss = float32(floats.Sum(losses) / float64(len(losses)))
	}

	var err error
	if m.ValidationLoss, err = Evaluate(model, backend, cfg.Validation); err != nil {
		return m, fmt.Errorf("validation: %w", err)
	}
	if m.TestLoss, err = Evaluate(model, backend, cfg.Test); err != nil {
		return m, fmt.Errorf("test: %w", err)
	}
	return m, nil
}

// Evaluate returns the mean over batches of each batch's MSE reconstruction
// loss. Every batch counts equally regardless of its size.
//
// Nothing is recorded on the backend's tape while evaluating.
func Evaluate(model Model, backend *autodiff.Backend, batches []*tensor.Tensor) (float32, error) {
	if len(batches) == 0 {
		return 0, ErrNoBatches
	}

	// Disable gradient recording for evaluation
	tape := backend.Tape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()

	loss := nn.NewMSELoss(backend)
	losses := make([]float64, len(batches))
	for i, batch := range batches {
		if err := model.CheckInput(batch); err != nil {
			return 0, fmt.Errorf("%w: batch %d: %v", ErrBatchShape, i, err)
		}
		losses[i] = float64(loss.Forward(model.Forward(batch), batch).Item())
	}

	return float32(floats.Sum(losses) / float64(len(batches))), nil
}
