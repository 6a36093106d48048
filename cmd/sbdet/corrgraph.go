// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/sbdet/persist"
	"github.com/katalvlaran/sbdet/pivot"
	"github.com/spf13/cobra"
)

func newCorrGraphCmd(a *app) *cobra.Command {
	var pivotsArg, out string
	var threshold float64
	cmd := &cobra.Command{
		Use:   "corrgraph DIR",
		Short: "Correlate node interaction with a pivot set",
		Long: `Stack each snapshot's interaction with --pivots into a T×N series,
correlate it across nodes and print the pairs above --threshold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Correlation.Threshold
			}
			pivots, err := parseInts(pivotsArg)
			if err != nil {
				return err
			}
			seq, err := loadSequence(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			g, err := pivot.CorrelationGraph(seq, pivots, threshold)
			if err != nil {
				return err
			}
			a.logger.Debug("correlation computed", "pivots", pivots, "matrix", g.Correlation)
			if out != "" {
				if err := persist.SaveGraph(out, g, pivots); err != nil {
					return err
				}
			}
			printGraph(cmd, g)

			return nil
		},
	}
	cmd.Flags().StringVar(&pivotsArg, "pivots", "", "comma separated pivot nodes (required)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "correlation threshold")
	cmd.Flags().StringVar(&out, "out", "", "write the graph report to this .yaml/.json file")
	_ = cmd.MarkFlagRequired("pivots")

	return cmd
}

func printGraph(cmd *cobra.Command, g *pivot.Graph) {
	w := cmd.OutOrStdout()
	edges := g.Edges()
	fmt.Fprintf(w, "correlation graph (threshold %g): %d edge(s)\n", g.Threshold, len(edges))
	for _, e := range edges {
		fmt.Fprintf(w, "  %d -- %d  r=%.4f\n", e.I, e.J, e.Correlation)
	}
	if comps := g.Components(); len(comps) > 0 {
		fmt.Fprintf(w, "components: %v\n", comps)
	}
}
