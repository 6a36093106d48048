// SPDX-License-Identifier: MIT
// Package matrix: central validators.
//
// Purpose:
//   - One source of truth for shape/nil checks used by every kernel.
//   - Validators return sentinels wrapped with a validator tag; kernels wrap
//     again with their own op tag, so errors.Is keeps working end to end.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed-nil *Dense or *Sparse stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Sparse:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and of length n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible checks a.Cols == b.Rows for a*b.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateNonNegative checks every entry is ≥ 0 (interaction weights).
// Returns the first offending coordinates in the error text.
// Complexity: O(r*c) for Dense, O(nnz) for Sparse.
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateNonNegative", err)
	}
	var bad error
	visit := func(i, j int, v float64) bool {
		if v < 0 {
			bad = validatorErrorf("ValidateNonNegative", fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegativeEntry))
			return false
		}
		return true
	}
	switch d := m.(type) {
	case *Dense:
		d.Do(visit)
	case *Sparse:
		d.DoNonZero(visit)
	default:
		for i := 0; i < m.Rows() && bad == nil; i++ {
			for j := 0; j < m.Cols(); j++ {
				v, err := m.At(i, j)
				if err != nil {
					return validatorErrorf("ValidateNonNegative", err)
				}
				if !visit(i, j, v) {
					break
				}
			}
		}
	}

	return bad
}
