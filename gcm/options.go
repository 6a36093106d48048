// SPDX-License-Identifier: MIT

package gcm

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
)

// Defaults. The iteration cap and tolerance are tuned constants, not derived
// values; both are overridable.
const (
	// DefaultTolerance is the L1 change between iterates that ends the run.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations is the hard cap on QP solves (iterations 0..10).
	DefaultMaxIterations = 11

	// defaultSeed seeds the initial weights when no seed (or seed 0) is given.
	defaultSeed int64 = 1
)

// InitMode selects the initial weight vector.
type InitMode int

const (
	// InitRandom draws U[0,1) entries from the seeded source and normalizes them.
	InitRandom InitMode = iota
	// InitUniform starts from 1/T everywhere.
	InitUniform
)

// String implements fmt.Stringer.
func (m InitMode) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

const (
	panicTolerance     = "gcm: WithTolerance: eps must be finite and > 0"
	panicMaxIterations = "gcm: WithMaxIterations: n must be > 0"
	panicMaxSnapshots  = "gcm: WithMaxSnapshots: t must be >= 0"
	panicNilRand       = "gcm: WithRand: nil source"
	panicInitMode      = "gcm: WithInit: unknown mode"
)

// Option configures an Estimator.
type Option func(*options)

type options struct {
	tol          float64
	maxIter      int
	maxSnapshots int
	seed         int64
	rng          *rand.Rand
	init         InitMode
	solver       string
	logger       *slog.Logger
	observer     Observer
}

// WithTolerance sets ε. Panics unless eps is finite and > 0.
func WithTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicTolerance)
	}

	return func(o *options) { o.tol = eps }
}

// WithMaxIterations sets the cap on QP solves. Panics unless n > 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *options) { o.maxIter = n }
}

// WithMaxSnapshots keeps only the first t snapshots; 0 keeps all.
func WithMaxSnapshots(t int) Option {
	if t < 0 {
		panic(panicMaxSnapshots)
	}

	return func(o *options) { o.maxSnapshots = t }
}

// WithSeed seeds the random initial weights. Seed 0 maps to the default seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = defaultSeed
		}
		o.seed = seed
	}
}

// WithRand supplies the random source directly; it takes precedence over WithSeed.
// The source is consumed, so reusing it across runs changes the initial weights.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicNilRand)
	}

	return func(o *options) { o.rng = r }
}

// WithInit selects the initial weights.
func WithInit(mode InitMode) Option {
	if mode != InitRandom && mode != InitUniform {
		panic(panicInitMode)
	}

	return func(o *options) { o.init = mode }
}

// WithSolver selects the QP backend by registry name ("" = qp.DefaultSolver).
func WithSolver(name string) Option {
	return func(o *options) { o.solver = name }
}

// WithLogger sets the structured logger; nil restores the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver attaches a progress/metrics hook. Several observers can be
// combined with MultiObserver.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func gatherOptions(opts ...Option) options {
	o := options{
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
		seed:    defaultSeed,
		init:    InitRandom,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	return o
}
