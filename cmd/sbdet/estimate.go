// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/persist"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/spf13/cobra"
)

func newEstimateCmd(a *app) *cobra.Command {
	var ef estimatorFlags
	var out string
	cmd := &cobra.Command{
		Use:   "estimate DIR",
		Short: "Estimate per-snapshot weights",
		Long: `Estimate per-snapshot weights of the sequence in DIR by iterated
entropy maximization and print the solve trace. --out saves the trace as
YAML or JSON (by extension) for "sbdet pivots".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ef.apply(cmd, a); err != nil {
				return err
			}
			seq, err := loadSequence(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			tr, err := gcm.Estimate(seq, a.estimatorOptions(cmd)...)
			if err != nil {
				return err
			}
			if out != "" {
				if err := persist.SaveTrace(out, tr); err != nil {
					return err
				}
			}
			printTrace(cmd.OutOrStdout(), tr)

			return a.flushMetrics()
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "write the trace to this .yaml/.json file")

	return cmd
}

func loadSequence(ctx context.Context, a *app, dir string) (snapshot.Sequence, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	seq, err := persist.LoadSequence(ctx, dir)
	if err != nil {
		return nil, err
	}
	n, t := seq.Dims()
	a.logger.Debug("sequence loaded", "dir", dir, "n", n, "t", t)

	return seq, nil
}

func printTrace(w io.Writer, tr *gcm.Trace) {
	status := "converged"
	if !tr.Converged {
		status = "stopped at iteration cap"
	}
	fmt.Fprintf(w, "run %s: %s after %d solve(s) in %s (solver %s, init %s)\n",
		tr.RunID, status, tr.Iterations, tr.Elapsed.Round(time.Microsecond), tr.Solver, tr.Init)
	fmt.Fprintf(w, "n=%d t=%d objective=%s last error=%.3g\n",
		tr.N, tr.T, humanize.FtoaWithDigits(tr.Objective, 6), tr.LastError())
	fmt.Fprintf(w, "weights: %s\n", formatFloats(tr.Weights))
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.4f", x)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
