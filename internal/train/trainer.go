// Package train fits MLPs to small in-memory datasets.
//
// A Trainer runs full-batch gradient descent: every step forwards all samples,
// averages their squared errors, backpropagates once and lets the optimizer
// update the parameters.
package train

import (
	"context"
	"errors"
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/config"
	"github.com/born-ml/minigrad/internal/ctxlog"
	"github.com/born-ml/minigrad/internal/nn"
	"github.com/born-ml/minigrad/internal/optim"
)

// Errors returned by the trainer.
var (
	ErrNoSamples   = errors.New("no training samples")
	ErrSampleShape = errors.New("sample does not match model")
)

// Trainer ties a model to an optimizer.
type Trainer struct {
	Model     *nn.MLP
	Optimizer optim.Optimizer
	ClipNorm  float64 // Clip the global gradient norm to this value. 0 disables clipping.
	LogEvery  int     // Log every LogEvery steps. 0 disables periodic logging.
}

// Result summarizes a Fit call.
type Result struct {
	Steps       int // Steps actually taken.
	InitialLoss float64
	FinalLoss   float64
}

// Loss builds the mean squared error over samples as a fresh graph.
//
// Each sample contributes the MSE between its target and the matching model
// outputs; the result is the mean over samples.
func (t *Trainer) Loss(samples []Sample) *autodiff.Value {
	if len(samples) == 0 {
		return autodiff.New(0)
	}
	losses := make([]*autodiff.Value, len(samples))
	for i, s := range samples {
		losses[i] = nn.MSELoss(t.Model.Forward(nn.Inputs(s.Input)), s.Target)
	}
	return autodiff.Sum(losses...).DivScalar(float64(len(samples)))
}

// Step performs one update and returns the loss before it.
func (t *Trainer) Step(samples []Sample) (float64, error) {
	if err := t.check(samples); err != nil {
		return 0, err
	}
	loss, _ := t.step(samples)
	return loss, nil
}

// Fit runs steps updates over samples.
//
// ctx is checked before every step. On cancellation the returned Result
// describes the steps completed so far and the error wraps ctx.Err().
func (t *Trainer) Fit(ctx context.Context, samples []Sample, steps int) (Result, error) {
	if err := t.check(samples); err != nil {
		return Result{}, err
	}
	logger := ctxlog.FromContext(ctx)

	res := Result{InitialLoss: t.Loss(samples).Data()}
	logger.Debug("Training started.", "steps", steps, "samples", len(samples), "parameters", len(t.Model.Parameters()), "loss", res.InitialLoss)

	for res.Steps < steps {
		if err := ctx.Err(); err != nil {
			res.FinalLoss = t.Loss(samples).Data()
			return res, fmt.Errorf("training stopped after %d steps: %w", res.Steps, err)
		}

		loss, norm := t.step(samples)
		res.Steps++

		if t.LogEvery > 0 && res.Steps%t.LogEvery == 0 {
			logger.Debug("Training step.", "step", res.Steps, "loss", loss, "grad_norm", norm)
		}
	}

	res.FinalLoss = t.Loss(samples).Data()
	logger.Info("Training finished.", "steps", res.Steps, "initial_loss", res.InitialLoss, "final_loss", res.FinalLoss)
	return res, nil
}

// step runs forward, backward, optional clipping and the update.
// It returns the loss and the pre-clip gradient norm.
func (t *Trainer) step(samples []Sample) (float64, float64) {
	loss := t.Loss(samples)

	t.Optimizer.ZeroGrad()
	loss.Backward()

	params := t.Model.Parameters()
	var norm float64
	if t.ClipNorm > 0 {
		norm = optim.ClipGradNorm(params, t.ClipNorm)
	} else {
		norm = optim.GradNorm(params)
	}

	t.Optimizer.Step()
	return loss.Data(), norm
}

func (t *Trainer) check(samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	sizes := t.Model.Sizes()
	in, out := sizes[0], sizes[len(sizes)-1]
	for i, s := range samples {
		if len(s.Input) != in || len(s.Target) != out {
			return fmt.Errorf("%w: sample %d has %d inputs and %d targets, model is %d -> %d",
				ErrSampleShape, i, len(s.Input), len(s.Target), in, out)
		}
	}
	return nil
}

// FromConfig builds a trainer and its dataset from cfg.
//
// The XOR dataset is used when cfg has no samples.
func FromConfig(cfg *config.Training) (*Trainer, []Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	samples := cfg.Samples
	if len(samples) == 0 {
		samples = XOR()
		if err := cfg.ValidateSamples(samples); err != nil {
			return nil, nil, fmt.Errorf("built-in XOR dataset: %w", err)
		}
	}

	model := nn.NewMLP(cfg.Sizes, nn.NewRand(cfg.Seed))
	return &Trainer{
		Model:     model,
		Optimizer: NewOptimizer(model.Parameters(), cfg.Optimizer),
		ClipNorm:  cfg.ClipNorm,
		LogEvery:  cfg.LogEvery,
	}, samples, nil
}

// NewOptimizer builds the optimizer described by cfg over params.
func NewOptimizer(params []*autodiff.Value, cfg config.Optimizer) optim.Optimizer {
	if cfg.Kind == config.OptimizerAdam {
		return optim.NewAdam(params, optim.AdamConfig{LR: cfg.LR, Betas: cfg.Betas, Eps: cfg.Eps})
	}
	return optim.NewSGD(params, optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})
}
