// SPDX-License-Identifier: MIT

package progress_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/progress"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/stretchr/testify/require"
)

func TestBar_Draw(t *testing.T) {
	var buf bytes.Buffer
	b := progress.New(&buf, true)
	require.True(t, b.Enabled())

	b.OnStart(3, 4, 4)
	b.OnIteration(0, 0.5, -1.25)
	require.Equal(t, "\riteration 1/4 [####............] err=5.0e-01 obj=-1.2500", buf.String())

	buf.Reset()
	b.OnIteration(3, 1e-6, -2)
	require.True(t, strings.HasPrefix(buf.String(), "\riteration 4/4 [################]"))

	buf.Reset()
	b.OnFinish(&gcm.Trace{})
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\r"))
	require.True(t, strings.HasSuffix(out, "\r"))
	require.Empty(t, strings.TrimSpace(out))
}

func TestBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	b := progress.New(&buf, false)
	b.OnStart(1, 1, 1)
	b.OnIteration(0, 1, 1)
	b.OnFinish(nil)
	require.Zero(t, buf.Len())

	require.False(t, progress.New(nil, true).Enabled())
}

func TestAuto_NotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "progress")
	require.NoError(t, err)
	defer f.Close()

	require.False(t, progress.Auto(f).Enabled())
}

func TestBar_AsEstimatorObserver(t *testing.T) {
	seq, err := snapshot.FromRows([][][]float64{
		{{0, 3}, {1, 0}},
		{{0, 2}, {1, 0}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	tr, err := gcm.Estimate(seq, gcm.WithObserver(progress.New(&buf, true)))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "iteration 1/")
	require.Positive(t, tr.Iterations)
	require.True(t, strings.HasSuffix(buf.String(), "\r"))
}
