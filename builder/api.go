// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildSequence(n, t, opts, layers...). Allocates T zero
//     N×N snapshots, resolves cfg, runs layers in order.
//   - Determinism: same inputs/options/seed and layer order ⇒ identical sequences.
//   - Safety: never panic; layers return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
)

const (
	methodBuildSequence = "BuildSequence"
	minVertices         = 2
	minSteps            = 1
)

// Layer adds interaction weight to a sequence under construction.
// Layers MUST:
//   - Validate parameters before touching any snapshot.
//   - Keep every cell non-negative and finite, and the diagonal zero.
//   - Consume the RNG in a fixed, documented order.
type Layer func(steps []*matrix.Dense, cfg builderConfig) error

// BuildSequence allocates t zero n×n snapshots, applies the layers in order
// and returns the result, converted to *matrix.Sparse under WithSparse.
// Any layer error is wrapped as "BuildSequence: %w" and returned immediately.
//
// Errors: ErrTooFewVertices (n<2), ErrBadSize (t<1), ErrConstructFailed (nil
// layer), and whatever a layer returns.
// Complexity: O(t·n²) plus the layers' cost.
func BuildSequence(n, t int, opts []BuilderOption, layers ...Layer) (snapshot.Sequence, error) {
	if n < minVertices {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodBuildSequence, n, minVertices, ErrTooFewVertices)
	}
	if t < minSteps {
		return nil, fmt.Errorf("%s: t=%d < min=%d: %w", methodBuildSequence, t, minSteps, ErrBadSize)
	}
	cfg := newBuilderConfig(opts...)

	steps := make([]*matrix.Dense, t)
	for s := range steps {
		d, err := matrix.NewDense(n, n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuildSequence, err)
		}
		steps[s] = d
	}
	for i, layer := range layers {
		if layer == nil {
			return nil, fmt.Errorf("%s: nil layer at index %d: %w", methodBuildSequence, i, ErrConstructFailed)
		}
		if err := layer(steps, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuildSequence, err)
		}
	}

	seq := make(snapshot.Sequence, t)
	for s, d := range steps {
		if !cfg.sparse {
			seq[s] = d
			continue
		}
		sp, err := toSparse(d)
		if err != nil {
			return nil, fmt.Errorf("%s: snapshot %d: %w", methodBuildSequence, s, err)
		}
		seq[s] = sp
	}

	return seq, nil
}

// Background returns t steps of symmetric random traffic over n nodes with
// edge probability p (see RandomTraffic).
func Background(n, t int, p float64, opts ...BuilderOption) (snapshot.Sequence, error) {
	return BuildSequence(n, t, opts, RandomTraffic(p))
}

// Botnet returns Background(n, t, p) overlaid with a leader↔bots star on every
// step where schedule is on (see StarBurst). len(schedule) must equal t.
func Botnet(n, t int, p float64, leader int, bots []int, schedule []bool, opts ...BuilderOption) (snapshot.Sequence, error) {
	return BuildSequence(n, t, opts, RandomTraffic(p), StarBurst(leader, bots, schedule))
}

func toSparse(d *matrix.Dense) (*matrix.Sparse, error) {
	var ts []matrix.Triplet
	d.Do(func(i, j int, v float64) bool {
		if v != 0 {
			ts = append(ts, matrix.Triplet{Row: i, Col: j, Value: v})
		}
		return true
	})

	return matrix.NewSparseFromTriplets(d.Rows(), d.Cols(), ts)
}
