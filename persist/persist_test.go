// SPDX-License-Identifier: MIT

package persist_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/sbdet/builder"
	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/persist"
	"github.com/katalvlaran/sbdet/pivot"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) snapshot.Sequence {
	t.Helper()
	seq, err := builder.Background(5, 4, 0.5, builder.WithSeed(21), builder.WithUniformWeight(0.5, 3))
	require.NoError(t, err)

	return seq
}

func requireSameSequence(t *testing.T, want, got snapshot.Sequence) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, values(t, want[i]), values(t, got[i]), "snapshot %d differs", i)
	}
}

// values flattens m in row-major order.
func values(t *testing.T, m matrix.Matrix) []float64 {
	t.Helper()
	out := make([]float64, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out = append(out, v)
		}
	}

	return out
}

func TestMatrixBinary(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{0, 1.0 / 3}, {2e-300, 7}, {5, 0}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, persist.SaveMatrix(&buf, m))
	got, err := persist.LoadMatrix(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Data(), got.Data())
	require.Equal(t, 3, got.Rows())

	_, err = persist.LoadMatrix(strings.NewReader("nope"))
	require.Error(t, err)

	require.ErrorIs(t, persist.SaveMatrix(&buf, nil), matrix.ErrNilMatrix)

	sp, err := matrix.NewSparseFromTriplets(2, 3, []matrix.Triplet{{Row: 1, Col: 2, Value: 4}, {Row: 0, Col: 0, Value: 1}})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, persist.SaveMatrix(&buf, sp))
	got, err = persist.LoadMatrix(&buf)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 0, 4}, got.Data())
}

func TestMatrixCSV(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{0, 0.1}, {1.0 / 3, 12}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, persist.WriteCSV(&buf, m))
	require.Equal(t, "0,0.1\n0.3333333333333333,12\n", buf.String())

	got, err := persist.ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Data(), got.Data())

	for _, body := range []string{"", "1,2\n3\n", "1,x\n"} {
		_, err := persist.ReadCSV(strings.NewReader(body))
		require.ErrorIs(t, err, persist.ErrMalformed, "body %q", body)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := fixture(t)
	for _, format := range []string{persist.FormatCSV, persist.FormatBinary} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "seq")
			require.NoError(t, persist.SaveSequence(dir, seq, format))

			man, err := persist.LoadManifest(dir)
			require.NoError(t, err)
			require.Equal(t, 5, man.N)
			require.Equal(t, 4, man.T)
			require.Equal(t, "snapshot-0003."+format, man.Files[3])

			got, err := persist.LoadSequence(context.Background(), dir)
			require.NoError(t, err)
			requireSameSequence(t, seq, got)
		})
	}
}

func TestSequenceErrors(t *testing.T) {
	seq := fixture(t)

	require.ErrorIs(t, persist.SaveSequence(t.TempDir(), seq, "xml"), persist.ErrUnknownFormat)
	require.ErrorIs(t, persist.SaveSequence(t.TempDir(), nil, persist.FormatCSV), snapshot.ErrConfiguration)

	_, err := persist.LoadSequence(context.Background(), t.TempDir())
	require.ErrorIs(t, err, persist.ErrManifest)

	writeManifest := func(t *testing.T, body string) string {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, persist.ManifestName), []byte(body), 0o644))
		return dir
	}

	_, err = persist.LoadManifest(writeManifest(t, "version: 2\nn: 1\nt: 1\nformat: csv\nfiles: [a]\n"))
	require.ErrorIs(t, err, persist.ErrManifest)

	_, err = persist.LoadManifest(writeManifest(t, "version: 1\nn: 1\nt: 1\nformat: xml\nfiles: [a]\n"))
	require.ErrorIs(t, err, persist.ErrUnknownFormat)

	_, err = persist.LoadManifest(writeManifest(t, "version: 1\nn: 1\nt: 2\nformat: csv\nfiles: [a]\n"))
	require.ErrorIs(t, err, persist.ErrManifest)

	_, err = persist.LoadManifest(writeManifest(t, "version: [\n"))
	require.ErrorIs(t, err, persist.ErrManifest)

	// n disagrees with the snapshot files.
	dir := t.TempDir()
	require.NoError(t, persist.SaveSequence(dir, seq, persist.FormatCSV))
	data, err := os.ReadFile(filepath.Join(dir, persist.ManifestName))
	require.NoError(t, err)
	patched := strings.Replace(string(data), "n: 5", "n: 6", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, persist.ManifestName), []byte(patched), 0o644))
	_, err = persist.LoadSequence(context.Background(), dir)
	require.ErrorIs(t, err, persist.ErrManifest)

	// A corrupted snapshot surfaces from the worker group.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot-0002.csv"), []byte("1,a\n"), 0o644))
	_, err = persist.LoadSequence(context.Background(), dir)
	require.ErrorIs(t, err, persist.ErrMalformed)
}

func TestLoadSequence_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, persist.SaveSequence(dir, fixture(t), persist.FormatBinary))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := persist.LoadSequence(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTrace(t *testing.T) {
	tr := &gcm.Trace{
		RunID:      "6f1c4a52-1111-4e0b-9a53-3c1d2f1f0c11",
		Errors:     []float64{0.5, 1e-6},
		Weights:    []float64{0.25, 0.75},
		Objective:  -3.5,
		Iterations: 2,
		Converged:  true,
		Solver:     "pgd",
		Init:       "random",
		N:          3,
		T:          2,
		Elapsed:    1500 * time.Millisecond,
	}
	for _, name := range []string{"trace.yaml", "trace.yml", "trace.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, persist.SaveTrace(path, tr))
			got, err := persist.LoadTrace(path)
			require.NoError(t, err)
			require.Equal(t, tr, got)
		})
	}

	require.ErrorIs(t, persist.SaveTrace(filepath.Join(t.TempDir(), "trace.txt"), tr), persist.ErrUnknownFormat)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err := persist.LoadTrace(bad)
	require.ErrorIs(t, err, persist.ErrMalformed)
}

func TestGraphReport(t *testing.T) {
	steps := make([][][]float64, 3)
	for s := range steps {
		k := float64(s + 1)
		steps[s] = [][]float64{{0, k, 2 * k}, {0, 0, 0}, {0, 0, 0}}
	}
	seq, err := snapshot.FromRows(steps)
	require.NoError(t, err)
	g, err := pivot.CorrelationGraph(seq, []int{0}, 0.9)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, persist.SaveGraph(path, g, []int{0}))
	rep, err := persist.LoadGraphReport(path)
	require.NoError(t, err)
	require.Equal(t, 3, rep.N)
	require.Equal(t, 0.9, rep.Threshold)
	require.Equal(t, []int{0}, rep.Pivots)
	require.Equal(t, g.Edges(), rep.Edges)
	require.Equal(t, g.Correlation.RawRow(1), rep.Correlation[1])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"correlation"`)
	require.Contains(t, string(raw), `"i": 1`)
}
