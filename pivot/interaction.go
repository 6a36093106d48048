// SPDX-License-Identifier: MIT

package pivot

import (
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
)

// Interaction returns Σ_t w_t·Σ_{p∈pivots} A_t[p,:], each node's weighted
// interaction with the pivot set. An empty pivot set yields a zero vector.
// Errors: snapshot.ErrConfiguration family, ErrWeightLength, ErrPivotOutOfRange.
func Interaction(seq snapshot.Sequence, weights []float64, pivots []int) ([]float64, error) {
	traffic, err := Traffic(seq, pivots)
	if err != nil {
		return nil, err
	}
	if len(weights) != traffic.Rows() {
		return nil, fmt.Errorf("%w: len=%d, T=%d", ErrWeightLength, len(weights), traffic.Rows())
	}
	out, err := matrix.VecMat(weights, traffic)
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}

	return out, nil
}

// Traffic returns the T×N matrix whose row t is Σ_{p∈pivots} A_t[p,:].
// Errors: snapshot.ErrConfiguration family, ErrPivotOutOfRange.
func Traffic(seq snapshot.Sequence, pivots []int) (*matrix.Dense, error) {
	n, t, err := seq.Validate()
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}
	for _, p := range pivots {
		if p < 0 || p >= n {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPivotOutOfRange, p, n)
		}
	}
	traffic, err := matrix.NewDense(t, n)
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}
	for s, m := range seq {
		row, err := matrix.SumRowsOf(m, pivots)
		if err != nil {
			return nil, fmt.Errorf("pivot: snapshot %d: %w", s, err)
		}
		copy(traffic.RawRow(s), row)
	}

	return traffic, nil
}
