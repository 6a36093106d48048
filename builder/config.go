// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng         = nil              (pure unless seeded)
//   - weightFn    = DefaultWeightFn  (constant DefaultEdgeWeight)
//   - burstWeight = DefaultBurstWeight
//   - sparse      = false            (*matrix.Dense snapshots)

package builder

import "math/rand"

// DefaultBurstWeight is the per-edge weight a star burst adds when
// WithBurstWeight is not given.
const DefaultBurstWeight = 10.0

// builderConfig aggregates all knobs used by layers.
// It is passed by VALUE to layers.
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Background edge weight generator.
	weightFn WeightFn
	// Weight added to each leader↔bot pair on an active step.
	burstWeight float64
	// Emit CSR snapshots.
	sparse bool
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		weightFn:    DefaultWeightFn,
		burstWeight: DefaultBurstWeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
