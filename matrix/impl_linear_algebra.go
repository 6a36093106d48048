// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix-vector products, transpose and matrix multiplication. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Notes:
//   - Every kernel allocates a fresh result; operands are never mutated.
//   - *Dense and *Sparse have flat fast paths; any other Matrix goes through At.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot-products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opVecMat    = "VecMat"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m·x (len(y) = Rows(m)).
// Implementation:
//   - Stage 1: validate m non-nil and len(x) == Cols(m).
//   - Stage 2: Dense row dot-products, Sparse stored-entry walk, or At fallback.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "MatVec").
//
// Complexity: Time O(r*c) dense, O(nnz) sparse; Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	switch d := m.(type) {
	case *Dense:
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				if x[j] != 0 { // skip zero multiplications
					acc += d.data[base+j] * x[j]
				}
			}
			y[i] = acc
		}
		return y, nil
	case *Sparse:
		for i := 0; i < d.r; i++ {
			acc := ZeroSum
			for k := d.rowPtr[i]; k < d.rowPtr[i+1]; k++ {
				acc += d.vals[k] * x[d.colIdx[k]]
			}
			y[i] = acc
		}
		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// VecMat computes y = xᵀ·m (len(y) = Cols(m)) without materializing mᵀ.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Rows(m)).
// Complexity: Time O(r*c) dense, O(nnz) sparse; Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, cols)

	switch d := m.(type) {
	case *Dense:
		var i, j, base int
		var xv float64
		for i = 0; i < d.r; i++ {
			xv = x[i]
			if xv == 0 {
				continue
			}
			base = i * d.c
			for j = 0; j < d.c; j++ {
				y[j] += xv * d.data[base+j]
			}
		}
		return y, nil
	case *Sparse:
		for i := 0; i < d.r; i++ {
			if x[i] == 0 {
				continue
			}
			for k := d.rowPtr[i]; k < d.rowPtr[i+1]; k++ {
				y[d.colIdx[k]] += x[i] * d.vals[k]
			}
		}
		return y, nil
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opVecMat, err)
			}
			y[j] += x[i] * v
		}
	}

	return y, nil
}

// Transpose returns a new Dense with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	res, err := newDenseScratch(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	switch d := m.(type) {
	case *Dense:
		res.validateNaNInf = d.validateNaNInf
		var i, j int
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				res.data[j*r+i] = d.data[i*c+j]
			}
		}
		return res, nil
	case *Sparse:
		res.validateNaNInf = DefaultValidateNaNInf
		d.DoNonZero(func(i, j int, v float64) bool {
			res.data[j*r+i] = v
			return true
		})
		return res, nil
	}

	res.validateNaNInf = DefaultValidateNaNInf
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
		}
	}

	return res, nil
}

// Mul computes the matrix product a·b into a fresh Dense.
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: Dense×Dense uses the i-k-j loop over flat buffers (skipping zero a[i,k]);
//     otherwise a generic i-j-k triple loop over At.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k         int
		av, bv, current float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}
