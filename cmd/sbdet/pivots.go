// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/sbdet/persist"
	"github.com/katalvlaran/sbdet/pivot"
	"github.com/spf13/cobra"
)

func newPivotsCmd(a *app) *cobra.Command {
	var tracePath string
	var threshold float64
	cmd := &cobra.Command{
		Use:   "pivots DIR",
		Short: "Select pivot nodes from a saved trace",
		Long: `Score every node of the sequence in DIR by its weighted total interaction,
normalize by the maximum score and print the nodes above --threshold along
with their interaction with the pivot set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Pivot.Threshold
			}
			tr, err := persist.LoadTrace(tracePath)
			if err != nil {
				return err
			}
			seq, err := loadSequence(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			seq = seq.Truncate(tr.T)

			pivots, err := pivot.Select(seq, tr.Weights, threshold)
			if err != nil {
				return err
			}
			inta, err := pivot.Interaction(seq, tr.Weights, pivots)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pivots (threshold %g): %v\n", threshold, pivots)
			fmt.Fprintf(w, "interaction: %s\n", formatFloats(inta))

			return nil
		},
	}
	cmd.Flags().StringVar(&tracePath, "trace", "", "trace written by \"sbdet estimate --out\" (required)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "normalized score threshold")
	_ = cmd.MarkFlagRequired("trace")

	return cmd
}
