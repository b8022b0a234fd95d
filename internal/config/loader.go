package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/born-ml/minigrad/internal/ctxlog"
)

// fileRoot mirrors the top-level layout of a training file.
type fileRoot struct {
	Model     *modelBlock     `hcl:"model,block"`
	Optimizer *optimizerBlock `hcl:"optimizer,block"`
	Training  *trainingBlock  `hcl:"training,block"`
	Samples   []*sampleBlock  `hcl:"sample,block"`
}

type modelBlock struct {
	Sizes []int  `hcl:"sizes"`
	Seed  *int64 `hcl:"seed,optional"`
}

type optimizerBlock struct {
	Kind     string    `hcl:"kind,label"`
	LR       *float64  `hcl:"lr,optional"`
	Momentum float64   `hcl:"momentum,optional"`
	Betas    []float64 `hcl:"betas,optional"`
	Eps      float64   `hcl:"eps,optional"`
}

type trainingBlock struct {
	Steps    *int    `hcl:"steps,optional"`
	LogEvery *int    `hcl:"log_every,optional"`
	ClipNorm float64 `hcl:"clip_norm,optional"`
}

type sampleBlock struct {
	Input  []float64 `hcl:"input"`
	Target []float64 `hcl:"target"`
}

// Load reads, decodes and validates the training file at path.
func Load(ctx context.Context, path string) (*Training, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading training config.", "path", path)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	cfg, err := decode(file, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Training config loaded.", "sizes", cfg.Sizes, "optimizer", cfg.Optimizer.Kind, "steps", cfg.Steps, "samples", len(cfg.Samples))
	return cfg, nil
}

// Parse decodes and validates an in-memory training file. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Training, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*Training, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg, err := root.resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// resolve applies defaults to the decoded blocks.
func (r *fileRoot) resolve() (*Training, error) {
	cfg := Default()

	if m := r.Model; m != nil {
		cfg.Sizes = m.Sizes
		if m.Seed != nil {
			cfg.Seed = *m.Seed
		}
	}

	if o := r.Optimizer; o != nil {
		cfg.Optimizer.Kind = o.Kind
		if o.LR != nil {
			cfg.Optimizer.LR = *o.LR
		}
		cfg.Optimizer.Momentum = o.Momentum
		cfg.Optimizer.Eps = o.Eps
		switch len(o.Betas) {
		case 0:
		case 2:
			cfg.Optimizer.Betas = [2]float64{o.Betas[0], o.Betas[1]}
		default:
			return nil, fieldErrorf("optimizer.betas", "want 2 values, got %d", len(o.Betas))
		}
	}

	if t := r.Training; t != nil {
		if t.Steps != nil {
			cfg.Steps = *t.Steps
		}
		if t.LogEvery != nil {
			cfg.LogEvery = *t.LogEvery
		}
		cfg.ClipNorm = t.ClipNorm
	}

	for _, s := range r.Samples {
		cfg.Samples = append(cfg.Samples, Sample{Input: s.Input, Target: s.Target})
	}
	return cfg, nil
}

func sampleField(i int, name string) string {
	return fmt.Sprintf("sample[%d].%s", i, name)
}
