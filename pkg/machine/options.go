package machine

// DefaultStepLimit bounds a run when the caller sets no explicit budget.
// It is generous enough for any reasonable description while keeping a
// runaway machine from hanging the caller.
const DefaultStepLimit = 1_000_000

// RunConfig carries the per-run knobs.
type RunConfig struct {
	// StepLimit is the maximum number of transitions a run may take.
	StepLimit int
}

// RunOption configures a single run.
type RunOption func(*RunConfig)

// NewRunConfig applies opts over the defaults. Non-positive step limits
// fall back to DefaultStepLimit.
func NewRunConfig(opts ...RunOption) RunConfig {
	cfg := RunConfig{StepLimit: DefaultStepLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = DefaultStepLimit
	}
	return cfg
}

// WithStepLimit caps the number of transitions a run may take before it is
// rejected with a StepLimitExceeded diagnostic.
func WithStepLimit(n int) RunOption {
	return func(cfg *RunConfig) {
		cfg.StepLimit = n
	}
}
