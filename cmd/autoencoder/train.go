package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/born-ml/autoencoder/internal/autodiff"
	"github.com/born-ml/autoencoder/internal/autoencoder"
	"github.com/born-ml/autoencoder/internal/config"
	"github.com/born-ml/autoencoder/internal/mnist"
	"github.com/born-ml/autoencoder/internal/nn"
	"github.com/born-ml/autoencoder/internal/tensor"
	"github.com/born-ml/autoencoder/internal/train"
)

// defaultSyntheticSamples is the synthetic set size when no limit is given.
const defaultSyntheticSamples = 200

func runTrain(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, quiet, err := parseTrainFlags(args, stdout)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "MNIST Autoencoder - training")
	fmt.Fprintln(stdout, strings.Repeat("=", 60))

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if cfg.Training.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Training.Seed, cfg.Training.Seed))
		nn.Seed(cfg.Training.Seed)
	}

	fmt.Fprintf(stdout, "\nLoading data (source: %s)...\n", cfg.Data.Source)
	trainData, valData, testData, err := loadData(cfg.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "   Train: %d samples, Val: %d samples, Test: %d samples\n",
		trainData.NumSamples(), valData.NumSamples(), testData.NumSamples())

	backend := autodiff.New()
	activation, err := latentActivation(cfg.Model.LatentActivation, backend)
	if err != nil {
		return err
	}
	model, err := autoencoder.NewMNIST(cfg.Model.LatentSize, cfg.Model.Layers, activation, backend)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%s\n", model)
	fmt.Fprintf(stdout, "   Encoder: %v\n", model.EncoderSchedule())
	fmt.Fprintf(stdout, "   Decoder: %v\n", model.DecoderSchedule())
	fmt.Fprintf(stdout, "   Model has %d trainable parameters\n", nn.CountParameters(model.Parameters()))

	trainBatches, err := trainData.Batches(cfg.Training.BatchSize, rng)
	if err != nil {
		return fmt.Errorf("create train batches: %w", err)
	}
	valBatches, err := valData.Batches(cfg.Training.BatchSize, nil)
	if err != nil {
		return fmt.Errorf("create validation batches: %w", err)
	}
	testBatches, err := testData.Batches(cfg.Training.BatchSize, nil)
	if err != nil {
		return fmt.Errorf("create test batches: %w", err)
	}

	fmt.Fprintf(stdout, "\nTraining Configuration:\n")
	fmt.Fprintf(stdout, "   Optimizer: %s (lr=%g)\n", cfg.Training.Optimizer, cfg.Training.LR)
	fmt.Fprintf(stdout, "   Loss: MSELoss\n")
	fmt.Fprintf(stdout, "   Batch Size: %d (%d batches)\n", cfg.Training.BatchSize, len(trainBatches))
	fmt.Fprintf(stdout, "   Epochs: %d\n", cfg.Training.Epochs)

	trainCfg := train.Config{
		LR:        cfg.Training.LR,
		Epochs:    cfg.Training.Epochs,
		Optimizer: cfg.Training.Optimizer,
	}
	if !quiet {
		trainCfg.Progress = stdout
	}
	if cfg.Tracking.Enabled {
		tracker, err := train.NewFileTracker(cfg.Tracking.Path)
		if err != nil {
			return err
		}
		defer tracker.Close()

		fmt.Fprintf(stdout, "   Tracking: %s (run %s)\n", cfg.Tracking.Path, tracker.RunID())
		trainCfg.Tracking = true
		trainCfg.Validation = valBatches
		trainCfg.Test = testBatches
		trainCfg.Tracker = tracker
	}

	fmt.Fprintln(stdout, "\nStarting training...")
	if err := train.Train(ctx, model, backend, trainBatches, trainCfg); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Training complete!")

	fmt.Fprintf(stdout, "\nFinal Results:\n")
	for _, split := range []struct {
		name    string
		batches []*tensor.Tensor
	}{
		{"Validation", valBatches},
		{"Test", testBatches},
	} {
		loss, err := train.Evaluate(model, backend, split.batches)
		if errors.Is(err, train.ErrNoBatches) {
			fmt.Fprintf(stdout, "   %s loss: n/a (no samples)\n", split.name)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "   %s loss: %.6f\n", split.name, loss)
	}
	return nil
}

// parseTrainFlags loads the run file named by -config (if any) and applies
// explicitly set flags on top of it.
func parseTrainFlags(args []string, output io.Writer) (config.Config, bool, error) {
	def := config.Default()

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(output)
	configPath := fs.String("config", "", "YAML run file (flags override its values)")
	latent := fs.Int("latent", def.Model.LatentSize, "Latent space size")
	layers := fs.Int("layers", def.Model.Layers, "Number of encoder layers")
	activation := fs.String("activation", def.Model.LatentActivation, "Latent activation: none, relu, sigmoid, tanh")
	lr := fs.Float64("lr", float64(def.Training.LR), "Learning rate")
	epochs := fs.Int("epochs", def.Training.Epochs, "Number of training epochs")
	batchSize := fs.Int("batch", def.Training.BatchSize, "Batch size")
	optimizer := fs.String("optimizer", def.Training.Optimizer, "Optimizer: adam or sgd")
	seed := fs.Uint64("seed", def.Training.Seed, "Random seed (0 = random)")
	source := fs.String("source", def.Data.Source, "Data source: idx, csv, embedded, synthetic")
	dataDir := fs.String("data", def.Data.Dir, "Directory containing MNIST IDX files")
	csvPath := fs.String("csv", def.Data.Path, "CSV file for the csv source")
	maxSamples := fs.Int("samples", def.Data.MaxSamples, "Max samples to load per split (0 = all)")
	valRatio := fs.Float64("val-ratio", def.Data.ValidationRatio, "Fraction of training samples held out for validation")
	track := fs.Bool("track", def.Tracking.Enabled, "Record per-epoch metrics")
	trackPath := fs.String("track-path", def.Tracking.Path, "JSON-lines metrics file")
	quiet := fs.Bool("quiet", false, "Disable progress bars")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, false, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, false, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "latent":
			cfg.Model.LatentSize = *latent
		case "layers":
			cfg.Model.Layers = *layers
		case "activation":
			cfg.Model.LatentActivation = *activation
		case "lr":
			cfg.Training.LR = float32(*lr)
		case "epochs":
			cfg.Training.Epochs = *epochs
		case "batch":
			cfg.Training.BatchSize = *batchSize
		case "optimizer":
			cfg.Training.Optimizer = *optimizer
		case "seed":
			cfg.Training.Seed = *seed
		case "source":
			cfg.Data.Source = *source
		case "data":
			cfg.Data.Dir = *dataDir
		case "csv":
			cfg.Data.Path = *csvPath
		case "samples":
			cfg.Data.MaxSamples = *maxSamples
		case "val-ratio":
			cfg.Data.ValidationRatio = *valRatio
		case "track":
			cfg.Tracking.Enabled = *track
		case "track-path":
			cfg.Tracking.Path = *trackPath
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, false, err
	}
	return cfg, *quiet, nil
}

// loadData returns train, validation and test sets. Sources without a
// separate test split hold out cfg.ValidationRatio of the samples and
// divide them evenly between validation and test.
func loadData(cfg config.Data) (*mnist.Dataset, *mnist.Dataset, *mnist.Dataset, error) {
	switch cfg.Source {
	case config.SourceIDX:
		all, err := mnist.LoadIDX(cfg.Dir, true, cfg.MaxSamples)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil, nil, fmt.Errorf("MNIST files not found in %s (expected train-images-idx3-ubyte etc.): %w", cfg.Dir, err)
			}
			return nil, nil, nil, err
		}
		testData, err := mnist.LoadIDX(cfg.Dir, false, cfg.MaxSamples)
		if err != nil {
			return nil, nil, nil, err
		}
		trainData, valData := all.Split(cfg.ValidationRatio)
		return trainData, valData, testData, nil

	case config.SourceEmbedded:
		all := mnist.LoadEmbedded(true, cfg.MaxSamples)
		trainData, valData := all.Split(cfg.ValidationRatio)
		return trainData, valData, mnist.LoadEmbedded(false, cfg.MaxSamples), nil

	case config.SourceCSV:
		all, err := mnist.LoadCSV(cfg.Path, cfg.MaxSamples)
		if err != nil {
			return nil, nil, nil, err
		}
		trainData, valData, testData := holdOut(all, cfg.ValidationRatio)
		return trainData, valData, testData, nil

	case config.SourceSynthetic:
		n := cfg.MaxSamples
		if n == 0 {
			n = defaultSyntheticSamples
		}
		trainData, valData, testData := holdOut(mnist.Synthetic(n), cfg.ValidationRatio)
		return trainData, valData, testData, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}

func holdOut(all *mnist.Dataset, ratio float64) (trainData, valData, testData *mnist.Dataset) {
	trainData, rest := all.Split(ratio)
	valData, testData = rest.Split(0.5)
	return trainData, valData, testData
}

func latentActivation(name string, backend *autodiff.Backend) (nn.Module, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "relu":
		return nn.NewReLU(backend), nil
	case "sigmoid":
		return nn.NewSigmoid(backend), nil
	case "tanh":
		return nn.NewTanh(backend), nil
	default:
		return nil, fmt.Errorf("unknown latent activation %q", name)
	}
}
