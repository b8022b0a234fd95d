package train_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/config"
	"github.com/born-ml/minigrad/internal/ctxlog"
	"github.com/born-ml/minigrad/internal/nn"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/parallel"
	"github.com/born-ml/minigrad/internal/train"
)

func quietContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestXOR(t *testing.T) {
	samples := train.XOR()

	require.Len(t, samples, 4)
	for _, s := range samples {
		require.Len(t, s.Input, 2)
		require.Len(t, s.Target, 1)
		assert.Equal(t, 1-s.Input[0], s.Target[0])
	}
}

func TestTrainer_Loss(t *testing.T) {
	trainer, samples, err := train.FromConfig(config.Default())
	require.NoError(t, err)

	preds := make([]float64, len(samples))
	var want float64
	for i, s := range samples {
		preds[i] = trainer.Model.Forward(nn.Inputs(s.Input))[0].Data()
		d := s.Target[0] - preds[i]
		want += d * d
	}
	want /= float64(len(samples))

	assert.InDelta(t, want, trainer.Loss(samples).Data(), 1e-12)
	assert.Equal(t, 0.0, trainer.Loss(nil).Data())
}

func TestTrainer_StepReturnsLossBeforeUpdate(t *testing.T) {
	trainer, samples, err := train.FromConfig(config.Default())
	require.NoError(t, err)

	want := trainer.Loss(samples).Data()
	params := paramData(trainer.Model)

	got, err := trainer.Step(samples)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.NotEqual(t, params, paramData(trainer.Model))
}

func TestTrainer_StepRejectsBadSamples(t *testing.T) {
	trainer, _, err := train.FromConfig(config.Default())
	require.NoError(t, err)

	_, err = trainer.Step(nil)
	assert.ErrorIs(t, err, train.ErrNoSamples)

	_, err = trainer.Step([]train.Sample{{Input: []float64{1}, Target: []float64{0}}})
	assert.ErrorIs(t, err, train.ErrSampleShape)
}

func TestTrainer_FitXOR(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := config.Default()
		cfg.Seed = seed

		trainer, samples, err := train.FromConfig(cfg)
		require.NoError(t, err)

		res, err := trainer.Fit(quietContext(), samples, cfg.Steps)
		require.NoError(t, err)

		assert.Equal(t, 50, res.Steps)
		assert.Less(t, res.FinalLoss, res.InitialLoss, "seed %d did not improve", seed)
		assert.InDelta(t, trainer.Loss(samples).Data(), res.FinalLoss, 1e-12)
	}
}

func TestTrainer_FitMatchesManualLoop(t *testing.T) {
	cfg := config.Default()
	cfg.Steps = 5

	trainer, samples, err := train.FromConfig(cfg)
	require.NoError(t, err)
	_, err = trainer.Fit(quietContext(), samples, cfg.Steps)
	require.NoError(t, err)

	model := nn.NewMLP(cfg.Sizes, nn.NewRand(cfg.Seed))
	sgd := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.Optimizer.LR})
	for range cfg.Steps {
		loss := (&train.Trainer{Model: model}).Loss(samples)
		sgd.ZeroGrad()
		loss.Backward()
		sgd.Step()
	}

	got := trainer.Model.Parameters()
	for i, p := range model.Parameters() {
		assert.InDelta(t, p.Data(), got[i].Data(), 1e-12)
	}
}

func TestTrainer_FitCancelled(t *testing.T) {
	trainer, samples, err := train.FromConfig(config.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(quietContext())
	cancel()

	res, err := trainer.Fit(ctx, samples, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, res.InitialLoss, res.FinalLoss)
}

func TestTrainer_FitLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfg := config.Default()
	cfg.LogEvery = 10
	trainer, samples, err := train.FromConfig(cfg)
	require.NoError(t, err)

	_, err = trainer.Fit(ctx, samples, 20)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "step=10 ")
	assert.Contains(t, out, "step=20 ")
	assert.NotContains(t, out, "step=5 ")
	assert.Contains(t, out, "grad_norm=")
	assert.Contains(t, out, `msg="Training finished."`)
}

func TestTrainer_FitClipsGradients(t *testing.T) {
	cfg := config.Default()
	cfg.ClipNorm = 1e-3
	cfg.Steps = 1

	clipped, samples, err := train.FromConfig(cfg)
	require.NoError(t, err)
	before := paramData(clipped.Model)

	_, err = clipped.Fit(quietContext(), samples, 1)
	require.NoError(t, err)

	// Each parameter moves by lr * g with ||g|| <= clip, so the whole update is bounded.
	var moved float64
	for i, p := range clipped.Model.Parameters() {
		d := p.Data() - before[i]
		moved += d * d
	}
	assert.LessOrEqual(t, moved, (cfg.Optimizer.LR*cfg.ClipNorm)*(cfg.Optimizer.LR*cfg.ClipNorm)+1e-18)
	assert.LessOrEqual(t, optim.GradNorm(clipped.Model.Parameters()), cfg.ClipNorm+1e-12)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sizes = []int{3, 2}
	cfg.Optimizer = config.Optimizer{Kind: config.OptimizerAdam, LR: 0.01}
	cfg.Samples = []config.Sample{{Input: []float64{1, 2, 3}, Target: []float64{0, 1}}}

	trainer, samples, err := train.FromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2}, trainer.Model.Sizes())
	assert.Equal(t, cfg.Samples, samples)
	assert.IsType(t, &optim.Adam{}, trainer.Optimizer)
	assert.Equal(t, 0.01, trainer.Optimizer.GetLR())
	assert.Equal(t, cfg.LogEvery, trainer.LogEvery)
}

func TestFromConfig_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Steps = 0

		_, _, err := train.FromConfig(cfg)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("xor does not fit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sizes = []int{3, 1}

		_, _, err := train.FromConfig(cfg)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "XOR")
	})
}

func TestSweep(t *testing.T) {
	seeds := []int64{1, 2, 3, 4, 5}

	runs := train.Sweep(quietContext(), config.Default(), seeds, parallel.Config{Enabled: true, NumWorkers: 3})

	require.Len(t, runs, len(seeds))
	for i, r := range runs {
		require.NoError(t, r.Err)
		assert.Equal(t, seeds[i], r.Seed)
		assert.Equal(t, 50, r.Result.Steps)
	}

	best := train.Best(runs)
	require.NotNil(t, best)
	assert.LessOrEqual(t, best.Result.FinalLoss, 0.05)
}

func TestSweep_MatchesSequentialFit(t *testing.T) {
	cfg := config.Default()
	cfg.Steps = 10

	runs := train.Sweep(quietContext(), cfg, []int64{7, 8}, parallel.DefaultConfig())

	for _, r := range runs {
		seedCfg := cfg.Clone()
		seedCfg.Seed = r.Seed
		trainer, samples, err := train.FromConfig(seedCfg)
		require.NoError(t, err)
		want, err := trainer.Fit(quietContext(), samples, seedCfg.Steps)
		require.NoError(t, err)

		assert.Equal(t, want, r.Result)
	}
}

func TestBest(t *testing.T) {
	runs := []train.Run{
		{Seed: 1, Result: train.Result{FinalLoss: 0.3}},
		{Seed: 2, Err: errors.New("boom")},
		{Seed: 3, Result: train.Result{FinalLoss: 0.1}},
	}

	assert.Equal(t, int64(3), train.Best(runs).Seed)
	assert.Nil(t, train.Best(runs[1:2]))
	assert.Nil(t, train.Best(nil))
}

func paramData(m *nn.MLP) []float64 {
	params := m.Parameters()
	out := make([]float64, len(params))
	for i, p := range params {
		out[i] = p.Data()
	}
	return out
}
