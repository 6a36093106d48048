// SPDX-License-Identifier: MIT
// Package matrix: element-wise micro-kernels (ew*) and the scrub rule.
//
// Purpose:
//   - Centralize tight loops reused by statistics (centering, z-scoring).
//   - Make the numerical scrub rule explicit: division by zero and log(0)
//     produce ±Inf which are replaced by 0 in a named, separately tested step.
//
// Determinism:
//   - Fixed index order for every loop; no data-dependent traversal.

package matrix

import "math"

const (
	opReplaceInfNaN = "ReplaceInfNaN"
	opScaleCols     = "ScaleCols"
	opSubCols       = "broadcastSubCols"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c).
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opSubCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(colMeans) != c {
		return nil, matrixErrorf(opSubCols, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opSubCols, err)
	}
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - colMeans[j]
			}
		}
		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opSubCols, e)
			}
			out.data[i*c+j] = v - colMeans[j]
		}
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Use factors as 1/std for z-scoring, or 0 for degenerate columns.
// Time: O(r*c). Space: O(r*c).
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(scale) != c {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}
	out, err := newDenseScratch(r, c)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	switch d := X.(type) {
	case *Dense:
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * scale[j]
			}
		}
	case *Sparse:
		d.DoNonZero(func(i, j int, v float64) bool {
			out.data[i*c+j] = v * scale[j]
			return true
		})
	default:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, e := X.At(i, j)
				if e != nil {
					return nil, matrixErrorf(opScaleCols, e)
				}
				out.data[i*c+j] = v * scale[j]
			}
		}
	}
	out.validateNaNInf = DefaultValidateNaNInf

	return out, nil
}

// ewReplaceInfNaN copies X replacing any {±Inf, NaN} by val (finite).
// Time: O(r*c). Space: O(r*c).
func ewReplaceInfNaN(X Matrix, val float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}
	if isNonFinite(val) {
		return nil, matrixErrorf(opReplaceInfNaN, ErrNaNInf)
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}
	switch d := X.(type) {
	case *Dense:
		for idx, v := range d.data {
			if isNonFinite(v) {
				v = val
			}
			out.data[idx] = v
		}
		return out, nil
	case *Sparse:
		// Sparse never stores non-finite values; absent cells stay 0.
		d.DoNonZero(func(i, j int, v float64) bool {
			out.data[i*c+j] = v
			return true
		})
		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opReplaceInfNaN, e)
			}
			if isNonFinite(v) {
				v = val
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// ScrubInf replaces +Inf and -Inf entries of xs with 0 in place and returns
// the number of replaced entries. NaN is left untouched.
//
// This is the rule behind 1/a and log(a) on the predicted edge mass a: a
// zero entry means "no contribution", never an infinite one.
// Complexity: O(n).
func ScrubInf(xs []float64) int {
	n := 0
	for i, v := range xs {
		if math.IsInf(v, 0) {
			xs[i] = 0
			n++
		}
	}

	return n
}

// ScrubNonFinite replaces NaN, +Inf and -Inf entries of xs with 0 in place
// and returns the number of replaced entries.
// Complexity: O(n).
func ScrubNonFinite(xs []float64) int {
	n := 0
	for i, v := range xs {
		if isNonFinite(v) {
			xs[i] = 0
			n++
		}
	}

	return n
}
