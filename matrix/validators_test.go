// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil_TypedNil(t *testing.T) {
	var d *matrix.Dense
	var s *matrix.Sparse
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(s), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, [][]float64{{1}})))
}

func TestValidateSquare(t *testing.T) {
	require.NoError(t, matrix.ValidateSquare(MustDense(t, [][]float64{{1, 0}, {0, 1}})))
	require.ErrorIs(t, matrix.ValidateSquare(MustDense(t, rect)), matrix.ErrNonSquare)
}

func TestValidateNonNegative(t *testing.T) {
	require.NoError(t, matrix.ValidateNonNegative(MustDense(t, [][]float64{{0, 1}, {2, 0}})))

	neg := [][]float64{{0, 1}, {-2, 0}}
	for _, m := range []matrix.Matrix{MustDense(t, neg), MustSparse(t, neg), hide{MustDense(t, neg)}} {
		err := matrix.ValidateNonNegative(m)
		require.ErrorIs(t, err, matrix.ErrNegativeEntry)
		require.Contains(t, err.Error(), "(1,0)")
	}
}

func TestValidateVecLen(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
}
