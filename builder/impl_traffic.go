// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// impl_traffic.go - RandomTraffic(p) background layer.
//
// Canonical model:
//   - Per step, each unordered pair {i,j} (i<j) communicates independently with
//     probability p; the pair gets weight w = cfg.weightFn(rng) in both
//     directions (traffic is symmetric).
//
// Contract:
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng is required when 0 < p < 1 (else ErrNeedRandSource).
//   - Weights must be finite and ≥ 0 (else ErrInvalidWeight).
//
// Determinism:
//   - Trial order: step asc, then i asc, then j asc (j>i). One Float64 draw per
//     trial when 0<p<1, followed by the weight draw on success.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sbdet/matrix"
)

const (
	methodRandomTraffic = "RandomTraffic"
	probMin             = 0.0
	probMax             = 1.0
)

// RandomTraffic returns a Layer adding symmetric Erdős–Rényi traffic with
// edge probability p to every step.
// Complexity: O(t·n²).
func RandomTraffic(p float64) Layer {
	return func(steps []*matrix.Dense, cfg builderConfig) error {
		if !(p >= probMin && p <= probMax) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomTraffic, p, probMin, probMax, ErrInvalidProbability)
		}
		stochastic := p > probMin && p < probMax
		if stochastic && cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", methodRandomTraffic, ErrNeedRandSource)
		}
		if p == probMin {
			return nil
		}

		rng := cfg.rng
		for s, d := range steps {
			n := d.Rows()
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if stochastic && rng.Float64() >= p {
						continue
					}
					w := cfg.weightFn(rng)
					if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
						return fmt.Errorf("%s: step %d (%d,%d): w=%g: %w",
							methodRandomTraffic, s, i, j, w, ErrInvalidWeight)
					}
					addSymmetric(d, i, j, w)
				}
			}
		}

		return nil
	}
}

// addSymmetric adds w to cells (i,j) and (j,i) of d.
func addSymmetric(d *matrix.Dense, i, j int, w float64) {
	d.RawRow(i)[j] += w
	d.RawRow(j)[i] += w
}
