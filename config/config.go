// SPDX-License-Identifier: MIT

// Package config holds the sbdet CLI configuration file format.
//
// A file only needs the keys it changes; everything else keeps the value of
// DefaultConfig. Unknown keys are rejected.
//
//	estimator:
//	  tolerance: 1e-5
//	  max_iterations: 11
//	  solver: pgd
//	  init: random
//	  seed: 1
//	pivot:
//	  threshold: 0.5
//	correlation:
//	  threshold: 0.8
//	log:
//	  level: info
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/persist"
	"github.com/katalvlaran/sbdet/qp"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the configuration file.
type Config struct {
	Estimator   EstimatorConfig  `yaml:"estimator"`
	Pivot       ThresholdConfig  `yaml:"pivot"`
	Correlation ThresholdConfig  `yaml:"correlation"`
	Output      OutputConfig     `yaml:"output"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Simulation  SimulationConfig `yaml:"simulation"`
}

// EstimatorConfig maps onto the gcm options; zero MaxSnapshots keeps every
// snapshot and Init is "random" or "uniform".
type EstimatorConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	MaxSnapshots  int     `yaml:"max_snapshots"`
	Solver        string  `yaml:"solver"`
	Init          string  `yaml:"init"`
	Seed          int64   `yaml:"seed"`
}

// ThresholdConfig holds a strict cut-off (pivot score ratio or correlation).
type ThresholdConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// OutputConfig controls what the CLI writes besides its results.
type OutputConfig struct {
	// Format of snapshot files written by simulate: csv or bin.
	SnapshotFormat string `yaml:"snapshot_format"`
	Progress       bool   `yaml:"progress"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus text exposition after a run.
	Textfile string `yaml:"textfile"`
}

// SimulationConfig parameterizes "sbdet simulate": background traffic plus a
// leader bursting to its bots on the on-steps of a pulse schedule.
type SimulationConfig struct {
	Nodes       int     `yaml:"nodes"`
	Steps       int     `yaml:"steps"`
	Probability float64 `yaml:"probability"`
	Leader      int     `yaml:"leader"`
	Bots        []int   `yaml:"bots"`
	Period      int     `yaml:"period"`
	Duty        float64 `yaml:"duty"`
	BurstWeight float64 `yaml:"burst_weight"`
	Seed        int64   `yaml:"seed"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Estimator: EstimatorConfig{
			Tolerance:     gcm.DefaultTolerance,
			MaxIterations: gcm.DefaultMaxIterations,
			Solver:        qp.DefaultSolver,
			Init:          gcm.InitRandom.String(),
			Seed:          1,
		},
		Pivot:       ThresholdConfig{Threshold: 0.5},
		Correlation: ThresholdConfig{Threshold: 0.8},
		Output: OutputConfig{
			SnapshotFormat: persist.FormatCSV,
			Progress:       true,
		},
		Log: LogConfig{Level: "info"},
		Simulation: SimulationConfig{
			Nodes:       20,
			Steps:       24,
			Probability: 0.1,
			Leader:      0,
			Bots:        []int{1, 2, 3, 4, 5},
			Period:      4,
			Duty:        0.5,
			BurstWeight: 10,
			Seed:        1,
		},
	}
}

// Load reads path over DefaultConfig. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(bytes.NewReader(data))
}

// Parse decodes YAML from r over DefaultConfig and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every value the pipeline would otherwise reject late or
// panic on (gcm options panic on nonsensical values).
func (c *Config) Validate() error {
	e := c.Estimator
	switch {
	case !(e.Tolerance > 0) || math.IsInf(e.Tolerance, 0):
		return fmt.Errorf("%w: estimator.tolerance=%g", ErrInvalid, e.Tolerance)
	case e.MaxIterations <= 0:
		return fmt.Errorf("%w: estimator.max_iterations=%d", ErrInvalid, e.MaxIterations)
	case e.MaxSnapshots < 0:
		return fmt.Errorf("%w: estimator.max_snapshots=%d", ErrInvalid, e.MaxSnapshots)
	}
	if _, err := c.InitMode(); err != nil {
		return err
	}
	if _, err := qp.Lookup(e.Solver); err != nil {
		return fmt.Errorf("%w: estimator.solver: %v", ErrInvalid, err)
	}
	if v := c.Pivot.Threshold; math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: pivot.threshold=%g", ErrInvalid, v)
	}
	if v := c.Correlation.Threshold; math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: correlation.threshold=%g", ErrInvalid, v)
	}
	if f := c.Output.SnapshotFormat; f != persist.FormatCSV && f != persist.FormatBinary {
		return fmt.Errorf("%w: output.snapshot_format=%q", ErrInvalid, f)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// InitMode maps estimator.init to a gcm.InitMode.
func (c *Config) InitMode() (gcm.InitMode, error) {
	switch strings.ToLower(c.Estimator.Init) {
	case "", gcm.InitRandom.String():
		return gcm.InitRandom, nil
	case gcm.InitUniform.String():
		return gcm.InitUniform, nil
	default:
		return 0, fmt.Errorf("%w: estimator.init=%q", ErrInvalid, c.Estimator.Init)
	}
}

// LogLevel maps log.level (debug, info, warn, error) to a slog.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level=%q", ErrInvalid, c.Log.Level)
	}

	return lvl, nil
}

// EstimatorOptions translates the estimator section into gcm options.
// Call Validate first; invalid values make the gcm option constructors panic.
func (c *Config) EstimatorOptions() []gcm.Option {
	mode, _ := c.InitMode()

	return []gcm.Option{
		gcm.WithTolerance(c.Estimator.Tolerance),
		gcm.WithMaxIterations(c.Estimator.MaxIterations),
		gcm.WithMaxSnapshots(c.Estimator.MaxSnapshots),
		gcm.WithSolver(c.Estimator.Solver),
		gcm.WithInit(mode),
		gcm.WithSeed(c.Estimator.Seed),
	}
}
