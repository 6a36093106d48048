// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/sbdet/config"
	"github.com/katalvlaran/sbdet/gcm"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, gcm.DefaultTolerance, cfg.Estimator.Tolerance)
	require.Equal(t, gcm.DefaultMaxIterations, cfg.Estimator.MaxIterations)
	require.Len(t, cfg.EstimatorOptions(), 6)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbdet.yaml")
	body := "estimator:\n  solver: active-set\n  init: uniform\npivot:\n  threshold: 0.25\nlog:\n  level: debug\n  json: true\nsimulation:\n  bots: [7, 8]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "active-set", cfg.Estimator.Solver)
	require.Equal(t, 0.25, cfg.Pivot.Threshold)
	require.True(t, cfg.Log.JSON)
	require.Equal(t, []int{7, 8}, cfg.Simulation.Bots)
	// Untouched keys keep their defaults.
	require.Equal(t, gcm.DefaultTolerance, cfg.Estimator.Tolerance)
	require.Equal(t, 0.8, cfg.Correlation.Threshold)

	mode, err := cfg.InitMode()
	require.NoError(t, err)
	require.Equal(t, gcm.InitUniform, mode)
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)

	cfg, err = config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": "estimator:\n  wat: 1\n",
		"bad yaml":    "estimator: [\n",
		"tolerance":   "estimator:\n  tolerance: 0\n",
		"iterations":  "estimator:\n  max_iterations: -1\n",
		"snapshots":   "estimator:\n  max_snapshots: -2\n",
		"init":        "estimator:\n  init: zeros\n",
		"solver":      "estimator:\n  solver: cplex\n",
		"pivot":       "pivot:\n  threshold: .nan\n",
		"correlation": "correlation:\n  threshold: .inf\n",
		"format":      "output:\n  snapshot_format: xml\n",
		"log level":   "log:\n  level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(body))
			require.Error(t, err)
		})
	}

	_, err := config.Parse(strings.NewReader("estimator:\n  solver: cplex\n"))
	require.ErrorIs(t, err, config.ErrInvalid)
}
