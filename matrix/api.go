// SPDX-License-Identifier: MIT
// Package matrix: public facade over the internal kernels.
//
// Purpose:
//   - Expose a small, stable surface (reductions, statistics, sanitizers)
//     while the implementations live in impl_* and ops_* files.
//   - Keep error wrapping uniform: "<Op>: <sentinel>" so errors.Is works.

package matrix

const (
	opRowSums   = "RowSums"
	opColSums   = "ColSums"
	opSumRowsOf = "SumRowsOf"
	opTotal     = "Total"
)

// RowSums returns the vector of row totals (out-degrees of a snapshot).
// Implementation: MatVec with a ones vector; Sparse uses its stored rows.
// Complexity: O(r*c) dense, O(nnz) sparse.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	if s, ok := m.(*Sparse); ok {
		out := make([]float64, s.r)
		for i := range out {
			out[i] = s.RowSum(i)
		}
		return out, nil
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1
	}
	out, err := MatVec(m, ones)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}

	return out, nil
}

// ColSums returns the vector of column totals (in-degrees of a snapshot).
// Implementation: VecMat with a ones vector, so mᵀ is never materialized.
// Complexity: O(r*c) dense, O(nnz) sparse.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	ones := make([]float64, m.Rows())
	for i := range ones {
		ones[i] = 1
	}
	out, err := VecMat(ones, m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}

	return out, nil
}

// SumRowsOf returns Σ_{i∈rows} m[i,:], the column-wise sum of a row subset.
// Repeated indices count repeatedly; an empty subset yields a zero vector.
// Errors: ErrNilMatrix, ErrOutOfRange.
// Complexity: O(len(rows)*c) dense, O(Σ nnz(row)) sparse.
func SumRowsOf(m Matrix, rows []int) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSumRowsOf, err)
	}
	r := m.Rows()
	x := make([]float64, r)
	for _, i := range rows {
		if i < 0 || i >= r {
			return nil, matrixErrorf(opSumRowsOf, ErrOutOfRange)
		}
		x[i]++
	}
	out, err := VecMat(x, m)
	if err != nil {
		return nil, matrixErrorf(opSumRowsOf, err)
	}

	return out, nil
}

// Total returns the sum of every entry of m.
func Total(m Matrix) (float64, error) {
	rs, err := RowSums(m)
	if err != nil {
		return 0, matrixErrorf(opTotal, err)
	}
	sum := ZeroSum
	for _, v := range rs {
		sum += v
	}

	return sum, nil
}

// Correlation returns the Pearson correlation matrix of the columns of X
// together with the column means and sample standard deviations.
// A column with zero variance has a zero row and column in the result.
// Errors: ErrNilMatrix, ErrDimensionMismatch (fewer than two rows).
func Correlation(X Matrix) (*Dense, []float64, []float64, error) {
	return correlation(X)
}

// ReplaceInfNaN returns a copy of X with every NaN/±Inf replaced by val.
// Errors: ErrNilMatrix, ErrNaNInf (val not finite).
func ReplaceInfNaN(X Matrix, val float64) (*Dense, error) {
	return ewReplaceInfNaN(X, val)
}

// ScaleCols returns X with column j multiplied by scale[j].
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ScaleCols(X Matrix, scale []float64) (*Dense, error) {
	return ewScaleCols(X, scale)
}
