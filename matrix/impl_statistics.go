// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics used by the correlation-graph builder
//     (centering, Pearson correlation) as compositions over canonical kernels
//     (Transpose/Mul/Scale) and ew* micro-kernels.
//
// Exposed API (see api.go):
//   - Correlation(X) -> (Corr, means, stds) // Pearson corr via z-scoring; degenerate std → zeroed row/column
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

import "math"

const (
	opCenterColumns = "CenterColumns"
	opCorrelation   = "Correlation"
)

// degenerateStdTol is the standard deviation, relative to the column's largest
// magnitude, under which a column counts as constant. Centering a constant
// column leaves ulp-level residue, and z-scoring that residue would fabricate
// ±1 correlations. The test has no absolute floor.
const degenerateStdTol = 1e-12

// centerColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute column means in a deterministic pass (Dense fast-path; At fallback).
//   - Stage 3: Apply ewBroadcastSubCols to produce a centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(c) means).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				v, err := X.At(i, j)
				if err != nil {
					return nil, nil, matrixErrorf(opCenterColumns, err)
				}
				means[j] += v
			}
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// correlation computes the Pearson correlation matrix of the columns of X.
// Implementation:
//   - Stage 1: validate X non-nil and r >= 2.
//   - Stage 2: center columns; sample std and max |x| per column.
//   - Stage 3: z-score with invStd (0 for degenerate columns), Corr = ZᵀZ/(r-1).
//   - Stage 4: clamp to [-1, 1] against rounding drift.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2).
//
// Complexity:
//   - Time O(r*c + r*c^2), Space O(c^2).
//
// Notes:
//   - Scale-invariant: correlation(α*X) == correlation(X) for α>0.
//   - A degenerate column (std ≤ degenerateStdTol·max|x|) yields a zero row
//     and column, including its diagonal cell; this is the NaN→0 scrub of the
//     textbook definition.
func correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r, c := X.Rows(), X.Cols()
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	stds := make([]float64, c)
	scale := make([]float64, c)
	inv := 1.0 / float64(r-1)
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			v = Xc.data[base+j]
			stds[j] += v * v
			scale[j] = math.Max(scale[j], math.Abs(v+means[j]))
		}
	}
	invStd := make([]float64, c)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] * inv)
		if stds[j] > degenerateStdTol*scale[j] {
			invStd[j] = 1.0 / stds[j]
		}
	}

	Z, err := ewScaleCols(Xc, invStd)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Zt, err := Transpose(Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	G, err := Mul(Zt, Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	corr := G.(*Dense)
	for idx, g := range corr.data {
		g *= inv
		if g > 1 {
			g = 1
		} else if g < -1 {
			g = -1
		}
		corr.data[idx] = g
	}

	return corr, means, stds, nil
}
