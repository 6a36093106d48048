// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/sbdet"
	"github.com/katalvlaran/sbdet/persist"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var ef estimatorFlags
	var out string
	var pivotThr, corrThr float64
	cmd := &cobra.Command{
		Use:   "analyze DIR",
		Short: "Run estimate, pivots and corrgraph in one pass",
		Long: `Run the full pipeline on the sequence in DIR. With --out, trace.yaml and
graph.json are written to that directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ef.apply(cmd, a); err != nil {
				return err
			}
			if !cmd.Flags().Changed("pivot-threshold") {
				pivotThr = a.cfg.Pivot.Threshold
			}
			if !cmd.Flags().Changed("corr-threshold") {
				corrThr = a.cfg.Correlation.Threshold
			}
			seq, err := loadSequence(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			rep, err := sbdet.Analyze(seq, sbdet.Config{
				Estimator:      a.estimatorOptions(cmd),
				PivotThreshold: pivotThr,
				CorrThreshold:  corrThr,
			})
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.MkdirAll(out, 0o755); err != nil {
					return err
				}
				if err := persist.SaveTrace(filepath.Join(out, "trace.yaml"), rep.Trace); err != nil {
					return err
				}
				if err := persist.SaveGraph(filepath.Join(out, "graph.json"), rep.Graph, rep.Pivots); err != nil {
					return err
				}
				a.logger.Info("report written", "dir", out)
			}

			w := cmd.OutOrStdout()
			printTrace(w, rep.Trace)
			fmt.Fprintf(w, "pivots (threshold %g): %v\n", pivotThr, rep.Pivots)
			fmt.Fprintf(w, "interaction: %s\n", formatFloats(rep.Interaction))
			printGraph(cmd, rep.Graph)

			return a.flushMetrics()
		},
	}
	ef.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&out, "out", "", "report directory")
	fs.Float64Var(&pivotThr, "pivot-threshold", 0, "normalized score threshold for pivots")
	fs.Float64Var(&corrThr, "corr-threshold", 0, "correlation threshold")

	return cmd
}
