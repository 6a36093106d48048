// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small deterministic fixtures for kernels and statistics.
//   - Offer a wrapper that hides the concrete type to force fallback paths.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type switches,
// so code under test takes the generic At/Set path.
type hide struct{ matrix.Matrix }

// MustDense builds a Dense from rows or fails the test.
func MustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return m
}

// MustSparse builds a Sparse with the same content as rows.
func MustSparse(t testing.TB, rows [][]float64) *matrix.Sparse {
	t.Helper()
	var ts []matrix.Triplet
	for i := range rows {
		for j, v := range rows[i] {
			if v != 0 {
				ts = append(ts, matrix.Triplet{Row: i, Col: j, Value: v})
			}
		}
	}
	s, err := matrix.NewSparseFromTriplets(len(rows), len(rows[0]), ts)
	require.NoError(t, err)

	return s
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RequireMatrixEqual compares m against want element-wise within tol.
func RequireMatrixEqual(t testing.TB, want [][]float64, m matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	require.Equal(t, len(want[0]), m.Cols(), "cols")
	for i := range want {
		for j := range want[i] {
			require.InDelta(t, want[i][j], MustAt(t, m, i, j), tol, "(%d,%d)", i, j)
		}
	}
}
