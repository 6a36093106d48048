// SPDX-License-Identifier: MIT

package pivot

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
)

// Scores returns Σ_t w_t·rowsum(A_t)[i] for every node i.
// Errors: snapshot.ErrConfiguration family, ErrWeightLength.
// Complexity: O(T·N²) dense, O(T·nnz) sparse.
func Scores(seq snapshot.Sequence, weights []float64) ([]float64, error) {
	n, t, err := seq.Validate()
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}
	if len(weights) != t {
		return nil, fmt.Errorf("%w: len=%d, T=%d", ErrWeightLength, len(weights), t)
	}
	total := make([]float64, n)
	for s, m := range seq {
		rs, err := matrix.RowSums(m)
		if err != nil {
			return nil, fmt.Errorf("pivot: snapshot %d: %w", s, err)
		}
		for i, v := range rs {
			total[i] += weights[s] * v
		}
	}

	return total, nil
}

// Select returns, in ascending order, the nodes whose score normalized by the
// maximum score strictly exceeds threshold. Threshold 0 returns every node
// with positive score; threshold ≥ 1 returns none.
//
// Errors: snapshot.ErrConfiguration family, ErrWeightLength,
// ErrInvalidThreshold, ErrDegenerateNormalization (max score ≤ 0).
func Select(seq snapshot.Sequence, weights []float64, threshold float64) ([]int, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, ErrInvalidThreshold
	}
	scores, err := Scores(seq, weights)
	if err != nil {
		return nil, err
	}
	peak := math.Inf(-1)
	for _, v := range scores {
		peak = math.Max(peak, v)
	}
	if !(peak > 0) {
		return nil, ErrDegenerateNormalization
	}

	pivots := []int{}
	for i, v := range scores {
		if v/peak > threshold {
			pivots = append(pivots, i)
		}
	}

	return pivots, nil
}
