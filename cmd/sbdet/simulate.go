// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/sbdet/builder"
	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/persist"
	"github.com/spf13/cobra"
)

func newSimulateCmd(a *app) *cobra.Command {
	var out, format, botsArg string
	var sim simFlags
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic botnet snapshot sequence",
		Long: `Write a synthetic sequence: symmetric random background traffic plus a
leader exchanging bursts with its bots on the "on" steps of a pulse schedule.`,
		Example: `  sbdet simulate --out ./traffic --nodes 30 --steps 48 --leader 0 --bots 1,2,3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &a.cfg.Simulation
			fs := cmd.Flags()
			if fs.Changed("nodes") {
				s.Nodes = sim.nodes
			}
			if fs.Changed("steps") {
				s.Steps = sim.steps
			}
			if fs.Changed("p") {
				s.Probability = sim.p
			}
			if fs.Changed("leader") {
				s.Leader = sim.leader
			}
			if fs.Changed("bots") {
				bots, err := parseInts(botsArg)
				if err != nil {
					return err
				}
				s.Bots = bots
			}
			if fs.Changed("period") {
				s.Period = sim.period
			}
			if fs.Changed("duty") {
				s.Duty = sim.duty
			}
			if fs.Changed("burst") {
				s.BurstWeight = sim.burst
			}
			if fs.Changed("sim-seed") {
				s.Seed = sim.seed
			}
			if !fs.Changed("format") {
				format = a.cfg.Output.SnapshotFormat
			}
			if !(s.BurstWeight > 0) {
				return fmt.Errorf("burst weight must be > 0, got %g", s.BurstWeight)
			}

			schedule, err := builder.Pulse(s.Steps, s.Period, s.Duty)
			if err != nil {
				return err
			}
			seq, err := builder.Botnet(s.Nodes, s.Steps, s.Probability, s.Leader, s.Bots, schedule,
				builder.WithSeed(s.Seed), builder.WithBurstWeight(s.BurstWeight))
			if err != nil {
				return err
			}
			if err := persist.SaveSequence(out, seq, format); err != nil {
				return err
			}

			var total float64
			for _, m := range seq {
				v, err := matrix.Total(m)
				if err != nil {
					return err
				}
				total += v
			}
			active := 0
			for _, on := range schedule {
				if on {
					active++
				}
			}
			a.logger.Info("sequence written", "dir", out, "n", s.Nodes, "t", s.Steps, "format", format)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d snapshots of %d nodes to %s (%d burst steps, total weight %s)\n",
				s.Steps, s.Nodes, out, active, humanize.Commaf(total))

			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&out, "out", "", "output directory (required)")
	fs.StringVar(&format, "format", persist.FormatCSV, "snapshot file format: csv or bin")
	fs.IntVar(&sim.nodes, "nodes", 0, "number of nodes")
	fs.IntVar(&sim.steps, "steps", 0, "number of snapshots")
	fs.Float64Var(&sim.p, "p", 0, "background edge probability")
	fs.IntVar(&sim.leader, "leader", 0, "leader node")
	fs.StringVar(&botsArg, "bots", "", "comma separated bot nodes")
	fs.IntVar(&sim.period, "period", 0, "burst period in steps")
	fs.Float64Var(&sim.duty, "duty", 0, "fraction of each period with bursts")
	fs.Float64Var(&sim.burst, "burst", 0, "weight of each leader-bot burst")
	fs.Int64Var(&sim.seed, "sim-seed", 0, "seed of the background traffic")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

type simFlags struct {
	nodes, steps, leader, period int
	p, duty, burst               float64
	seed                         int64
}
