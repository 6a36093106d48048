// SPDX-License-Identifier: MIT

package qp_test

import (
	"testing"

	"github.com/katalvlaran/sbdet/qp"
	"github.com/stretchr/testify/require"
)

func TestProject_Simplex(t *testing.T) {
	ones := []float64{1, 1, 1}
	lb := []float64{0, 0, 0}
	cases := []struct {
		name string
		v    []float64
		want []float64
	}{
		{"uniform", []float64{0.5, 0.5, 0.5}, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}},
		{"vertex", []float64{2, 0, 0}, []float64{1, 0, 0}},
		{"face", []float64{0.8, 0.6, -1}, []float64{0.6, 0.4, 0}},
		{"already feasible", []float64{0.2, 0.3, 0.5}, []float64{0.2, 0.3, 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]float64, 3)
			require.NoError(t, qp.Project(dst, tc.v, ones, 1, lb, ones))
			require.InDeltaSlice(t, tc.want, dst, 1e-12)
		})
	}
}

func TestProject_WeightedRow(t *testing.T) {
	dst := make([]float64, 2)
	require.NoError(t, qp.Project(dst, []float64{0, 0}, []float64{1, 2}, 2, []float64{0, 0}, []float64{1, 1}))
	require.InDeltaSlice(t, []float64{0.4, 0.8}, dst, 1e-12)
}

func TestProject_Infeasible(t *testing.T) {
	dst := make([]float64, 2)
	err := qp.Project(dst, []float64{0, 0}, []float64{1, 1}, 5, []float64{0, 0}, []float64{1, 1})
	require.ErrorIs(t, err, qp.ErrInfeasible)
	require.ErrorIs(t, err, qp.ErrSolverFailure)
}
