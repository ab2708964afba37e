package generator

import (
	"log/slog"

	"github.com/ha1tch/fsm-wordgen/internal/logging"
)

// Defaults used by DefaultOptions.
const (
	DefaultContinueProbability = 0.5
	DefaultFailureFactor       = 50
	DefaultMaxStartAttempts    = 100000
	DefaultMaxWalkSteps        = 10000
)

// Options configures a Generator.
type Options struct {
	// Seed for the random source. Zero picks a time-based seed.
	Seed uint64
	// ContinueProbability is the chance that a finite-state walk keeps going
	// after reaching the initial state.
	ContinueProbability float64
	// FailureFactor times the number of transitions is the number of
	// consecutive walks without a new word after which generation stops.
	FailureFactor int
	// MaxStartAttempts bounds the random draws made to pick a start state.
	MaxStartAttempts int
	// MaxWalkSteps bounds the number of transitions in a single walk.
	MaxWalkSteps int
	// Trace keeps the traversed path of every sample in the report.
	Trace  bool
	Logger *slog.Logger
}

// DefaultOptions returns the options used by New when none are given.
func DefaultOptions() Options {
	return Options{
		ContinueProbability: DefaultContinueProbability,
		FailureFactor:       DefaultFailureFactor,
		MaxStartAttempts:    DefaultMaxStartAttempts,
		MaxWalkSteps:        DefaultMaxWalkSteps,
		Logger:              logging.NewNop(),
	}
}

// Option defines a functional option for configuring the Generator.
type Option func(*Options)

// WithOptions replaces all options at once. Zero limits fall back to defaults.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

// WithSeed fixes the seed of the random source.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithContinueProbability sets the chance of walking on past the initial state.
func WithContinueProbability(p float64) Option {
	return func(o *Options) {
		o.ContinueProbability = p
	}
}

// WithFailureFactor sets the diminishing-returns cutoff multiplier.
func WithFailureFactor(f int) Option {
	return func(o *Options) {
		o.FailureFactor = f
	}
}

// WithMaxStartAttempts bounds start-state sampling.
func WithMaxStartAttempts(n int) Option {
	return func(o *Options) {
		o.MaxStartAttempts = n
	}
}

// WithMaxWalkSteps bounds the length of one walk.
func WithMaxWalkSteps(n int) Option {
	return func(o *Options) {
		o.MaxWalkSteps = n
	}
}

// WithTrace records the path of each sample.
func WithTrace(trace bool) Option {
	return func(o *Options) {
		o.Trace = trace
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func (o *Options) normalize() {
	d := DefaultOptions()
	if o.ContinueProbability < 0 || o.ContinueProbability >= 1 {
		o.ContinueProbability = d.ContinueProbability
	}
	if o.FailureFactor <= 0 {
		o.FailureFactor = d.FailureFactor
	}
	if o.MaxStartAttempts <= 0 {
		o.MaxStartAttempts = d.MaxStartAttempts
	}
	if o.MaxWalkSteps <= 0 {
		o.MaxWalkSteps = d.MaxWalkSteps
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
}
