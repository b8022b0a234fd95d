package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/minigrad/internal/config"
	"github.com/born-ml/minigrad/internal/ctxlog"
	"github.com/born-ml/minigrad/internal/nn"
	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/internal/train"
)

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to an HCL training file. Empty trains XOR with defaults.")
	outPath := fs.String("out", "", "Write the trained parameters to this SafeTensors file.")
	logLevel := fs.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format: 'text' or 'json'.")
	sweep := fs.Int("sweep", 1, "Train this many consecutive seeds and keep the best model.")
	workers := fs.Int("workers", parallel.DefaultConfig().NumWorkers, "Maximum seeds trained concurrently.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *sweep < 1 {
		return usageError("invalid sweep: must be at least 1")
	}
	if *workers < 1 {
		return usageError("invalid workers: must be at least 1")
	}

	logger, err := newLogger(*logLevel, *logFormat, stderr)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(ctx, *configPath); err != nil {
			return err
		}
	}

	seeds := make([]int64, *sweep)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}
	runs := train.Sweep(ctx, cfg, seeds, parallel.Config{Enabled: *workers > 1, NumWorkers: *workers})

	best := train.Best(runs)
	if best == nil {
		errs := make([]error, len(runs))
		for i, r := range runs {
			errs[i] = fmt.Errorf("seed %d: %w", r.Seed, r.Err)
		}
		return errors.Join(errs...)
	}
	logger.Info("Best run.", "seed", best.Seed, "final_loss", best.Result.FinalLoss, "runs", len(runs))

	fmt.Fprintf(stdout, "seed=%d steps=%d initial_loss=%.6f final_loss=%.6f\n",
		best.Seed, best.Result.Steps, best.Result.InitialLoss, best.Result.FinalLoss)

	if *outPath != "" {
		metadata := map[string]string{
			"seed":       strconv.FormatInt(best.Seed, 10),
			"steps":      strconv.Itoa(best.Result.Steps),
			"optimizer":  cfg.Optimizer.Kind,
			"final_loss": strconv.FormatFloat(best.Result.FinalLoss, 'g', -1, 64),
		}
		if err := nn.SaveMLP(*outPath, best.Trainer.Model, metadata); err != nil {
			return err
		}
		logger.Info("Saved model.", "path", *outPath)
	}
	return nil
}
