// SPDX-License-Identifier: MIT
// Package mlp - training configuration and functional options.
//
// Config is copied at the start of every Fit and never mutated while the fit
// runs. Options follow the recorded-error convention: an out-of-domain value
// does not panic, it is remembered and surfaced as ErrInvalidConfig when Fit
// validates the configuration.
package mlp

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvml/matrix"
)

// Default hyperparameters.
const (
	DefaultMaxIters       = 1000
	DefaultBatchSize      = 0 // full batch
	DefaultLearningRate   = 0.01
	DefaultErrorThreshold = 1e-4
	DefaultRegularization = 0.0
	DefaultWorkers        = 1

	// Adaptive learning-rate schedule: multiply by LRShrink when the epoch
	// loss increases, by LRGrow when it decreases, never exceeding
	// LRMaxFactor times the initial rate nor dropping below LRMin.
	DefaultLRShrink    = 0.5
	DefaultLRGrow      = 1.05
	DefaultLRMaxFactor = 10.0
	DefaultLRMin       = 1e-8
)

// Config holds every hyperparameter of a Fit call.
type Config struct {
	// Hidden lists the unit count of every hidden layer, input side first.
	// Empty means a single-layer network (inputs straight to outputs).
	Hidden []int

	// InitialWeights, when non-empty, replaces random initialization. Each
	// matrix has shape (in+1)×out with the bias in row 0. Mutually exclusive
	// with Hidden; the matrices are cloned, never mutated.
	InitialWeights []*matrix.Dense

	MaxIters       int     // maximum number of epochs (≥ 1)
	BatchSize      int     // rows per batch; 0 or > n means full batch
	LearningRate   float64 // initial step size (> 0)
	ErrorThreshold float64 // stop once the epoch loss falls below this (≥ 0)
	Regularization float64 // L2 strength λ (≥ 0); bias rows are exempt

	Activation Activation
	WeightInit WeightInit

	AdaptiveLR  bool
	LRShrink    float64 // in (0, 1)
	LRGrow      float64 // ≥ 1
	LRMaxFactor float64 // ≥ 1, relative to LearningRate
	LRMin       float64 // > 0

	// Standardize z-scores the input columns before training and re-applies
	// the same statistics at prediction time.
	Standardize bool

	// Shuffle reorders rows before each epoch when batches are smaller than
	// the dataset.
	Shuffle bool

	// Verbose emits one structured log record per epoch and a summary.
	Verbose bool

	// Workers splits each batch into that many contiguous row chunks whose
	// gradients are computed concurrently and summed in chunk order.
	Workers int

	// Logger receives Verbose records; nil means slog.Default().
	Logger *slog.Logger

	// OnEpoch, if set, is called after every epoch. A non-nil error aborts
	// Fit and is returned wrapped.
	OnEpoch func(stat EpochStat) error

	// err is the first invalid Option value, reported by Validate.
	err error
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the documented defaults: sigmoid activation, uniform
// initialization, full-batch gradient descent with standardization on.
func DefaultConfig() Config {
	return Config{
		MaxIters:       DefaultMaxIters,
		BatchSize:      DefaultBatchSize,
		LearningRate:   DefaultLearningRate,
		ErrorThreshold: DefaultErrorThreshold,
		Regularization: DefaultRegularization,
		Activation:     Sigmoid,
		WeightInit:     Uniform,
		LRShrink:       DefaultLRShrink,
		LRGrow:         DefaultLRGrow,
		LRMaxFactor:    DefaultLRMaxFactor,
		LRMin:          DefaultLRMin,
		Standardize:    true,
		Shuffle:        true,
		Workers:        DefaultWorkers,
	}
}

// record keeps the first option violation.
func (c *Config) record(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}
}

func badFloat(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Validate checks every field against its domain.
// Returns an error wrapping ErrInvalidConfig on the first violation.
func (c Config) Validate() error {
	if c.err != nil {
		return c.err
	}
	if c.MaxIters < 1 {
		return fmt.Errorf("%w: MaxIters must be ≥ 1 (%d)", ErrInvalidConfig, c.MaxIters)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: BatchSize cannot be negative (%d)", ErrInvalidConfig, c.BatchSize)
	}
	if badFloat(c.LearningRate) || c.LearningRate <= 0 {
		return fmt.Errorf("%w: LearningRate must be finite and > 0 (%g)", ErrInvalidConfig, c.LearningRate)
	}
	if badFloat(c.ErrorThreshold) || c.ErrorThreshold < 0 {
		return fmt.Errorf("%w: ErrorThreshold must be finite and ≥ 0 (%g)", ErrInvalidConfig, c.ErrorThreshold)
	}
	if badFloat(c.Regularization) || c.Regularization < 0 {
		return fmt.Errorf("%w: Regularization must be finite and ≥ 0 (%g)", ErrInvalidConfig, c.Regularization)
	}
	if _, err := c.Activation.resolve(); err != nil {
		return err
	}
	if !c.WeightInit.valid() {
		return fmt.Errorf("%w: unknown weight init %d", ErrInvalidConfig, int(c.WeightInit))
	}
	if badFloat(c.LRShrink) || c.LRShrink <= 0 || c.LRShrink >= 1 {
		return fmt.Errorf("%w: LRShrink must lie in (0,1) (%g)", ErrInvalidConfig, c.LRShrink)
	}
	if badFloat(c.LRGrow) || c.LRGrow < 1 {
		return fmt.Errorf("%w: LRGrow must be ≥ 1 (%g)", ErrInvalidConfig, c.LRGrow)
	}
	if badFloat(c.LRMaxFactor) || c.LRMaxFactor < 1 {
		return fmt.Errorf("%w: LRMaxFactor must be ≥ 1 (%g)", ErrInvalidConfig, c.LRMaxFactor)
	}
	if badFloat(c.LRMin) || c.LRMin <= 0 {
		return fmt.Errorf("%w: LRMin must be > 0 (%g)", ErrInvalidConfig, c.LRMin)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: Workers must be ≥ 1 (%d)", ErrInvalidConfig, c.Workers)
	}
	for i, h := range c.Hidden {
		if h < 1 {
			return fmt.Errorf("%w: Hidden[%d] must be ≥ 1 (%d)", ErrInvalidConfig, i, h)
		}
	}
	if len(c.Hidden) > 0 && len(c.InitialWeights) > 0 {
		return fmt.Errorf("%w: Hidden and InitialWeights are mutually exclusive", ErrInvalidConfig)
	}
	for i, w := range c.InitialWeights {
		if w == nil {
			return fmt.Errorf("%w: InitialWeights[%d] is nil", ErrInvalidConfig, i)
		}
	}

	return nil
}

// WithConfig replaces the whole configuration with c.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		prev := cfg.err
		*cfg = c
		if cfg.err == nil {
			cfg.err = prev
		}
	}
}

// WithHidden sets the hidden-layer unit counts. A count < 1 → ErrInvalidConfig.
func WithHidden(units ...int) Option {
	return func(c *Config) {
		for _, u := range units {
			if u < 1 {
				c.record("hidden layer size must be ≥ 1 (%d)", u)
				return
			}
		}
		c.Hidden = append([]int(nil), units...)
	}
}

// WithInitialWeights supplies pre-built weight matrices, one per layer
// transition, each (in+1)×out with bias in row 0.
func WithInitialWeights(ws ...*matrix.Dense) Option {
	return func(c *Config) {
		c.InitialWeights = append([]*matrix.Dense(nil), ws...)
	}
}

// WithMaxIters bounds the number of epochs. n < 1 → ErrInvalidConfig.
func WithMaxIters(n int) Option {
	return func(c *Config) {
		if n < 1 {
			c.record("MaxIters must be ≥ 1 (%d)", n)
			return
		}
		c.MaxIters = n
	}
}

// WithBatchSize sets rows per batch; 0 selects full batch. n < 0 → ErrInvalidConfig.
func WithBatchSize(n int) Option {
	return func(c *Config) {
		if n < 0 {
			c.record("BatchSize cannot be negative (%d)", n)
			return
		}
		c.BatchSize = n
	}
}

// WithLearningRate sets the initial step size. lr ≤ 0 or non-finite → ErrInvalidConfig.
func WithLearningRate(lr float64) Option {
	return func(c *Config) {
		if badFloat(lr) || lr <= 0 {
			c.record("LearningRate must be finite and > 0 (%g)", lr)
			return
		}
		c.LearningRate = lr
	}
}

// WithErrorThreshold sets the convergence threshold on the epoch loss.
func WithErrorThreshold(eps float64) Option {
	return func(c *Config) {
		if badFloat(eps) || eps < 0 {
			c.record("ErrorThreshold must be finite and ≥ 0 (%g)", eps)
			return
		}
		c.ErrorThreshold = eps
	}
}

// WithRegularization sets the L2 strength λ.
func WithRegularization(lambda float64) Option {
	return func(c *Config) {
		if badFloat(lambda) || lambda < 0 {
			c.record("Regularization must be finite and ≥ 0 (%g)", lambda)
			return
		}
		c.Regularization = lambda
	}
}

// WithActivation selects the activation used by every layer.
func WithActivation(a Activation) Option {
	return func(c *Config) {
		if _, err := a.resolve(); err != nil {
			c.record("unknown activation %d", int(a))
			return
		}
		c.Activation = a
	}
}

// WithWeightInit selects the initialization scheme.
func WithWeightInit(w WeightInit) Option {
	return func(c *Config) {
		if !w.valid() {
			c.record("unknown weight init %d", int(w))
			return
		}
		c.WeightInit = w
	}
}

// WithAdaptiveLR toggles the loss-driven learning-rate schedule.
func WithAdaptiveLR(on bool) Option {
	return func(c *Config) { c.AdaptiveLR = on }
}

// WithLRSchedule sets the adaptive schedule constants.
func WithLRSchedule(shrink, grow, maxFactor, minLR float64) Option {
	return func(c *Config) {
		if badFloat(shrink) || shrink <= 0 || shrink >= 1 {
			c.record("LRShrink must lie in (0,1) (%g)", shrink)
			return
		}
		if badFloat(grow) || grow < 1 || badFloat(maxFactor) || maxFactor < 1 {
			c.record("LRGrow and LRMaxFactor must be ≥ 1 (%g, %g)", grow, maxFactor)
			return
		}
		if badFloat(minLR) || minLR <= 0 {
			c.record("LRMin must be > 0 (%g)", minLR)
			return
		}
		c.LRShrink, c.LRGrow, c.LRMaxFactor, c.LRMin = shrink, grow, maxFactor, minLR
	}
}

// WithStandardize toggles input standardization.
func WithStandardize(on bool) Option {
	return func(c *Config) { c.Standardize = on }
}

// WithShuffle toggles per-epoch row shuffling.
func WithShuffle(on bool) Option {
	return func(c *Config) { c.Shuffle = on }
}

// WithVerbose toggles per-epoch logging.
func WithVerbose(on bool) Option {
	return func(c *Config) { c.Verbose = on }
}

// WithWorkers sets the number of gradient workers per batch. n < 1 → ErrInvalidConfig.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n < 1 {
			c.record("Workers must be ≥ 1 (%d)", n)
			return
		}
		c.Workers = n
	}
}

// WithLogger sets the destination of Verbose records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithOnEpoch registers a per-epoch callback; returning an error aborts Fit.
func WithOnEpoch(fn func(stat EpochStat) error) Option {
	return func(c *Config) { c.OnEpoch = fn }
}
