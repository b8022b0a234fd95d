package config

import "slices"

// Defaults applied to settings a file leaves out.
const (
	DefaultSeed      int64   = 1
	DefaultOptimizer         = OptimizerSGD
	DefaultLR        float64 = 0.1
	DefaultSteps             = 50
	DefaultLogEvery          = 10
)

// Optimizer kinds.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// DefaultSizes is the 2-4-4-1 network used when no model block is given.
func DefaultSizes() []int {
	return []int{2, 4, 4, 1}
}

// Training is a fully resolved training configuration.
type Training struct {
	Sizes     []int
	Seed      int64
	Optimizer Optimizer
	Steps     int
	LogEvery  int     // 0 disables periodic logging.
	ClipNorm  float64 // 0 disables gradient clipping.
	Samples   []Sample
}

// Optimizer selects and parameterizes the update rule.
type Optimizer struct {
	Kind     string
	LR       float64
	Momentum float64    // SGD only.
	Betas    [2]float64 // Adam only. Zero means the optimizer default.
	Eps      float64    // Adam only. Zero means the optimizer default.
}

// Sample is one input/target pair.
type Sample struct {
	Input  []float64
	Target []float64
}

// Default returns the configuration used when no file is given.
func Default() *Training {
	return &Training{
		Sizes:     DefaultSizes(),
		Seed:      DefaultSeed,
		Optimizer: Optimizer{Kind: DefaultOptimizer, LR: DefaultLR},
		Steps:     DefaultSteps,
		LogEvery:  DefaultLogEvery,
	}
}

// Validate checks the configuration and returns the first problem found as a *FieldError.
func (c *Training) Validate() error {
	if len(c.Sizes) < 2 {
		return fieldErrorf("model.sizes", "need at least 2 sizes, got %d", len(c.Sizes))
	}
	for i, s := range c.Sizes {
		if s <= 0 {
			return fieldErrorf("model.sizes", "size %d must be positive, got %d", i, s)
		}
	}

	switch c.Optimizer.Kind {
	case OptimizerSGD, OptimizerAdam:
	default:
		return fieldErrorf("optimizer", "unknown kind %q (want %q or %q)", c.Optimizer.Kind, OptimizerSGD, OptimizerAdam)
	}
	if c.Optimizer.LR <= 0 {
		return fieldErrorf("optimizer.lr", "must be positive, got %g", c.Optimizer.LR)
	}
	if c.Optimizer.Momentum < 0 || c.Optimizer.Momentum >= 1 {
		return fieldErrorf("optimizer.momentum", "must be in [0, 1), got %g", c.Optimizer.Momentum)
	}
	for i, b := range c.Optimizer.Betas {
		if b < 0 || b >= 1 {
			return fieldErrorf("optimizer.betas", "beta%d must be in [0, 1), got %g", i+1, b)
		}
	}
	if c.Optimizer.Eps < 0 {
		return fieldErrorf("optimizer.eps", "must not be negative, got %g", c.Optimizer.Eps)
	}

	if c.Steps <= 0 {
		return fieldErrorf("training.steps", "must be positive, got %d", c.Steps)
	}
	if c.LogEvery < 0 {
		return fieldErrorf("training.log_every", "must not be negative, got %d", c.LogEvery)
	}
	if c.ClipNorm < 0 {
		return fieldErrorf("training.clip_norm", "must not be negative, got %g", c.ClipNorm)
	}

	return c.ValidateSamples(c.Samples)
}

// ValidateSamples checks that every sample matches the network's input and output widths.
func (c *Training) ValidateSamples(samples []Sample) error {
	in, out := c.Sizes[0], c.Sizes[len(c.Sizes)-1]
	for i, s := range samples {
		if len(s.Input) != in {
			return fieldErrorf(sampleField(i, "input"), "want %d values, got %d", in, len(s.Input))
		}
		if len(s.Target) != out {
			return fieldErrorf(sampleField(i, "target"), "want %d values, got %d", out, len(s.Target))
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Training) Clone() *Training {
	clone := *c
	clone.Sizes = slices.Clone(c.Sizes)
	if c.Samples != nil {
		clone.Samples = make([]Sample, len(c.Samples))
		for i, s := range c.Samples {
			clone.Samples[i] = Sample{Input: slices.Clone(s.Input), Target: slices.Clone(s.Target)}
		}
	}
	return &clone
}
