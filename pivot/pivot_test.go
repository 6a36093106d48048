// SPDX-License-Identifier: MIT

package pivot_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/pivot"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/stretchr/testify/require"
)

func mustSeq(t *testing.T, steps [][][]float64) snapshot.Sequence {
	t.Helper()
	seq, err := snapshot.FromRows(steps)
	require.NoError(t, err)

	return seq
}

// twoStep: row sums (3,1) then (2,1).
func twoStep(t *testing.T) snapshot.Sequence {
	return mustSeq(t, [][][]float64{
		{{0, 3}, {1, 0}},
		{{0, 2}, {1, 0}},
	})
}

// fanOut: node 0 sends t to node 1 and 2t to node 2 at step t=1..3.
func fanOut(t *testing.T) snapshot.Sequence {
	return fanOutScaled(t, 1)
}

// fanOutScaled is fanOut with every weight multiplied by unit.
func fanOutScaled(t *testing.T, unit float64) snapshot.Sequence {
	steps := make([][][]float64, 3)
	for s := range steps {
		k := float64(s+1) * unit
		steps[s] = [][]float64{{0, k, 2 * k}, {0, 0, 0}, {0, 0, 0}}
	}

	return mustSeq(t, steps)
}

func TestScores(t *testing.T) {
	got, err := pivot.Scores(twoStep(t), []float64{0.5, 0.5})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2.5, 1}, got, 1e-12)
}

func TestSelect_Thresholds(t *testing.T) {
	seq := twoStep(t)
	w := []float64{0.5, 0.5}

	cases := []struct {
		name string
		thr  float64
		want []int
	}{
		{"zero keeps every positive node", 0, []int{0, 1}},
		{"between", 0.5, []int{0}},
		{"strict at ratio", 0.4, []int{0}},
		{"one keeps none", 1, []int{}},
		{"above one keeps none", 3, []int{}},
		{"negative keeps all", -1, []int{0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pivot.Select(seq, w, tc.thr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSelect_SparseMatchesDense(t *testing.T) {
	dense := twoStep(t)
	sparse := make(snapshot.Sequence, len(dense))
	for i, m := range dense {
		s, err := matrix.NewSparseFromTriplets(2, 2, []matrix.Triplet{
			{Row: 0, Col: 1, Value: mustAt(t, m, 0, 1)},
			{Row: 1, Col: 0, Value: mustAt(t, m, 1, 0)},
		})
		require.NoError(t, err)
		sparse[i] = s
	}
	w := []float64{0.2, 0.8}
	a, err := pivot.Select(dense, w, 0.3)
	require.NoError(t, err)
	b, err := pivot.Select(sparse, w, 0.3)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestSelect_Errors(t *testing.T) {
	seq := twoStep(t)

	_, err := pivot.Select(seq, []float64{1}, 0.5)
	require.ErrorIs(t, err, pivot.ErrWeightLength)

	_, err = pivot.Select(seq, []float64{0.5, 0.5}, math.NaN())
	require.ErrorIs(t, err, pivot.ErrInvalidThreshold)

	_, err = pivot.Select(seq, []float64{0.5, 0.5}, math.Inf(1))
	require.ErrorIs(t, err, pivot.ErrInvalidThreshold)

	_, err = pivot.Select(seq, []float64{0, 0}, 0.5)
	require.ErrorIs(t, err, pivot.ErrDegenerateNormalization)

	empty := mustSeq(t, [][][]float64{{{0, 0}, {0, 0}}})
	_, err = pivot.Select(empty, []float64{1}, 0.5)
	require.ErrorIs(t, err, pivot.ErrDegenerateNormalization)

	_, err = pivot.Select(nil, nil, 0.5)
	require.ErrorIs(t, err, snapshot.ErrConfiguration)
}

func TestInteraction(t *testing.T) {
	seq := twoStep(t)
	w := []float64{0.5, 0.5}

	got, err := pivot.Interaction(seq, w, []int{0})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 2.5}, got, 1e-12)

	got, err = pivot.Interaction(seq, w, []int{0, 1})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 2.5}, got, 1e-12)

	got, err = pivot.Interaction(seq, w, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, got)
}

func TestInteraction_Errors(t *testing.T) {
	seq := twoStep(t)

	_, err := pivot.Interaction(seq, []float64{0.5, 0.5}, []int{2})
	require.ErrorIs(t, err, pivot.ErrPivotOutOfRange)

	_, err = pivot.Interaction(seq, []float64{0.5, 0.5}, []int{-1})
	require.ErrorIs(t, err, pivot.ErrPivotOutOfRange)

	_, err = pivot.Interaction(seq, []float64{1, 0, 0}, []int{0})
	require.ErrorIs(t, err, pivot.ErrWeightLength)
}

func TestTraffic(t *testing.T) {
	tr, err := pivot.Traffic(fanOut(t), []int{0})
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 3, tr.Cols())
	require.Equal(t, []float64{0, 2, 4}, tr.RawRow(1))
}

func TestCorrelationGraph_IndependentOfTrafficUnit(t *testing.T) {
	for _, unit := range []float64{1e6, 1, 1e-6, 1e-13, 1e-100} {
		g, err := pivot.CorrelationGraph(fanOutScaled(t, unit), []int{0}, 0.99)
		require.NoError(t, err)
		c, err := g.Correlation.At(1, 2)
		require.NoError(t, err)
		require.InDelta(t, 1, c, 1e-9, "unit=%g", unit)
		require.True(t, g.Adjacency[1][2], "unit=%g", unit)
	}
}

func TestCorrelationGraph_PerfectPair(t *testing.T) {
	g, err := pivot.CorrelationGraph(fanOut(t), []int{0}, 0.99)
	require.NoError(t, err)

	c, err := g.Correlation.At(1, 2)
	require.NoError(t, err)
	require.InDelta(t, 1, c, 1e-12)

	require.True(t, g.Adjacency[1][2])
	require.True(t, g.Adjacency[2][1])
	require.Equal(t, []pivot.Edge{{I: 1, J: 2, Correlation: c}}, g.Edges())
	require.Equal(t, 1, g.Degree(1))
	require.Equal(t, 1, g.Degree(2))

	// Node 0 never receives from the pivot: zero variance, zero correlation.
	for j := 0; j < 3; j++ {
		v, err := g.Correlation.At(0, j)
		require.NoError(t, err)
		require.Zero(t, v)
		require.False(t, g.Adjacency[0][j])
	}
	require.Equal(t, 0, g.Degree(0))
	require.Equal(t, 0, g.Degree(7))
}

func TestCorrelationGraph_SingleSnapshot(t *testing.T) {
	g, err := pivot.CorrelationGraph(twoStep(t).Truncate(1), []int{0}, 0)
	require.NoError(t, err)
	require.Empty(t, g.Edges())
	for _, row := range g.Adjacency {
		require.NotContains(t, row, true)
	}
}

func TestCorrelationGraph_Idempotent(t *testing.T) {
	seq := mustSeq(t, [][][]float64{
		{{0, 1, 3}, {2, 0, 1}, {1, 1, 0}},
		{{0, 4, 1}, {1, 0, 2}, {3, 0, 0}},
		{{0, 2, 2}, {0, 0, 5}, {1, 2, 0}},
		{{0, 1, 1}, {3, 0, 1}, {2, 2, 0}},
	})
	a, err := pivot.CorrelationGraph(seq, []int{0, 2}, 0.2)
	require.NoError(t, err)
	b, err := pivot.CorrelationGraph(seq, []int{0, 2}, 0.2)
	require.NoError(t, err)
	require.Equal(t, a.Adjacency, b.Adjacency)
	require.Equal(t, a.Correlation.Data(), b.Correlation.Data())

	for i := range a.Adjacency {
		for j := range a.Adjacency {
			require.Equal(t, a.Adjacency[i][j], a.Adjacency[j][i])
		}
	}
}

func TestCorrelationGraph_Errors(t *testing.T) {
	seq := fanOut(t)

	_, err := pivot.CorrelationGraph(seq, []int{3}, 0.5)
	require.ErrorIs(t, err, pivot.ErrPivotOutOfRange)

	_, err = pivot.CorrelationGraph(seq, []int{0}, math.NaN())
	require.ErrorIs(t, err, pivot.ErrInvalidThreshold)
}

func TestGraph_Components(t *testing.T) {
	g := &pivot.Graph{Adjacency: [][]bool{
		{true, false, false, true, false},
		{false, true, false, false, false},
		{false, false, false, false, true},
		{true, false, false, false, true},
		{false, false, true, true, false},
	}}
	require.Equal(t, [][]int{{0, 3, 4, 2}}, g.Components())

	g, err := pivot.CorrelationGraph(fanOut(t), []int{0}, 0.99)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2}}, g.Components())
}
