// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Layers themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes a build by mutating builderConfig before any
// layer runs.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic layers.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the background edge weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithBurstWeight sets the weight every active leader↔bot pair receives.
// Panics unless w is finite and > 0.
func WithBurstWeight(w float64) BuilderOption {
	if !(w > 0) || math.IsInf(w, 0) {
		panic("builder: WithBurstWeight(w<=0 or non-finite)")
	}
	return func(c *builderConfig) {
		c.burstWeight = w
	}
}

// WithSparse makes BuildSequence emit *matrix.Sparse snapshots holding only
// the non-zero cells.
func WithSparse() BuilderOption {
	return func(c *builderConfig) {
		c.sparse = true
	}
}
