package train

import (
	"context"

	"github.com/born-ml/minigrad/internal/config"
	"github.com/born-ml/minigrad/internal/ctxlog"
	"github.com/born-ml/minigrad/internal/parallel"
)

// Run is the outcome of training one seed in a sweep.
type Run struct {
	Seed    int64
	Trainer *Trainer
	Result  Result
	Err     error
}

// Sweep trains one model per seed from cfg, running seeds concurrently per pcfg.
//
// Every run owns its model and graph. Runs are returned in seed order; a
// failed run carries its error in Err and does not stop the others.
func Sweep(ctx context.Context, cfg *config.Training, seeds []int64, pcfg parallel.Config) []Run {
	logger := ctxlog.FromContext(ctx)

	return parallel.Map(len(seeds), func(i int) Run {
		seedCfg := cfg.Clone()
		seedCfg.Seed = seeds[i]
		run := Run{Seed: seeds[i]}

		trainer, samples, err := FromConfig(seedCfg)
		if err != nil {
			run.Err = err
			return run
		}
		run.Trainer = trainer

		runCtx := ctxlog.WithLogger(ctx, logger.With("seed", seeds[i]))
		run.Result, run.Err = trainer.Fit(runCtx, samples, seedCfg.Steps)
		return run
	}, pcfg)
}

// Best returns the successful run with the lowest final loss, or nil if every run failed.
func Best(runs []Run) *Run {
	var best *Run
	for i := range runs {
		r := &runs[i]
		if r.Err != nil {
			continue
		}
		if best == nil || r.Result.FinalLoss < best.Result.FinalLoss {
			best = r
		}
	}
	return best
}
