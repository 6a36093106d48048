// SPDX-License-Identifier: MIT

package snapshot_test

import (
	"testing"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/stretchr/testify/require"
)

func TestComputeDegrees(t *testing.T) {
	seq := mustSeq(t,
		[][]float64{{0, 3}, {1, 0}},
		[][]float64{{0, 2}, {1, 0}},
	)
	d, err := snapshot.ComputeDegrees(seq)
	require.NoError(t, err)

	out0, _ := d.Out.Col(0)
	in1, _ := d.In.Col(1)
	require.Equal(t, []float64{3, 1}, out0)
	require.Equal(t, []float64{1, 2}, in1)
	require.Equal(t, []float64{4, 3}, d.Mass)
}

func TestComputeDegrees_SparseMatchesDense(t *testing.T) {
	rows := [][]float64{{0, 2, 0}, {0, 0, 5}, {1, 0, 0}}
	dense := mustSeq(t, rows)
	sp, err := matrix.NewSparseFromTriplets(3, 3, []matrix.Triplet{
		{Row: 0, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: 5}, {Row: 2, Col: 0, Value: 1},
	})
	require.NoError(t, err)

	dd, err := snapshot.ComputeDegrees(dense)
	require.NoError(t, err)
	ds, err := snapshot.ComputeDegrees(snapshot.Sequence{sp})
	require.NoError(t, err)
	require.Equal(t, dd.Out.Data(), ds.Out.Data())
	require.Equal(t, dd.In.Data(), ds.In.Data())
	require.Equal(t, dd.Mass, ds.Mass)
}

func TestComputeDegrees_ZeroMassStep(t *testing.T) {
	seq := mustSeq(t, [][]float64{{0, 1}, {1, 0}}, [][]float64{{0, 0}, {0, 0}})
	d, err := snapshot.ComputeDegrees(seq)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0}, d.Mass)
}

func TestComputeDegrees_Invalid(t *testing.T) {
	_, err := snapshot.ComputeDegrees(nil)
	require.ErrorIs(t, err, snapshot.ErrConfiguration)
}
