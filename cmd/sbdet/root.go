// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/sbdet/config"
	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/metrics"
	"github.com/katalvlaran/sbdet/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool
	noProgress bool
	textfile   string

	cfg    *config.Config
	logger *slog.Logger
	reg    *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sbdet",
		Short: "Botnet structure detection over graph snapshot sequences",
		Long: `sbdet estimates per-snapshot weights of a traffic sequence under a
generalized configuration model, selects pivot nodes from the weighted
traffic and correlates every node's interaction with the pivots.

Snapshot directories hold manifest.yaml plus one CSV or gonum-binary file
per snapshot (see "sbdet simulate").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	pf.BoolVar(&a.noProgress, "no-progress", false, "disable the progress line")
	pf.StringVar(&a.textfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")

	root.AddCommand(
		newSimulateCmd(a),
		newEstimateCmd(a),
		newPivotsCmd(a),
		newCorrGraphCmd(a),
		newAnalyzeCmd(a),
	)

	return root
}

// setup loads the configuration, applies global flag overrides and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}
	if flags.Changed("no-progress") {
		cfg.Output.Progress = !a.noProgress
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = a.textfile
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), lvl, cfg.Log.JSON)

	return nil
}

func newLogger(w io.Writer, lvl slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// estimatorOptions returns the configured gcm options plus logger and
// observers (progress line on a terminal stderr, Prometheus when a
// textfile is configured).
func (a *app) estimatorOptions(cmd *cobra.Command) []gcm.Option {
	opts := a.cfg.EstimatorOptions()
	opts = append(opts, gcm.WithLogger(a.logger))

	var obs gcm.MultiObserver
	if a.cfg.Output.Progress {
		if f, ok := cmd.ErrOrStderr().(*os.File); ok {
			obs = append(obs, progress.Auto(f))
		}
	}
	if a.cfg.Metrics.Textfile != "" {
		a.reg = prometheus.NewRegistry()
		obs = append(obs, metrics.NewObserver(a.reg))
	}
	if len(obs) > 0 {
		opts = append(opts, gcm.WithObserver(obs))
	}

	return opts
}

// flushMetrics writes the textfile when metrics were collected.
func (a *app) flushMetrics() error {
	if a.reg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile, a.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.logger.Debug("metrics written", "path", a.cfg.Metrics.Textfile)

	return nil
}
