// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// estimatorFlags are the per-command overrides of the estimator section.
type estimatorFlags struct {
	tol          float64
	maxIter      int
	maxSnapshots int
	seed         int64
	init         string
	solver       string
}

func (f *estimatorFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.tol, "tol", 0, "convergence tolerance on the L1 weight change")
	fs.IntVar(&f.maxIter, "max-iter", 0, "maximum number of QP solves")
	fs.IntVar(&f.maxSnapshots, "max-snapshots", 0, "use only the first N snapshots (0 = all)")
	fs.Int64Var(&f.seed, "seed", 0, "seed of the random initial weights")
	fs.StringVar(&f.init, "init", "", "initial weights: random or uniform")
	fs.StringVar(&f.solver, "solver", "", "QP backend: pgd, active-set or softmax")
}

// apply copies every flag the user set into the configuration and
// revalidates it.
func (f *estimatorFlags) apply(cmd *cobra.Command, a *app) error {
	fs := cmd.Flags()
	e := &a.cfg.Estimator
	if fs.Changed("tol") {
		e.Tolerance = f.tol
	}
	if fs.Changed("max-iter") {
		e.MaxIterations = f.maxIter
	}
	if fs.Changed("max-snapshots") {
		e.MaxSnapshots = f.maxSnapshots
	}
	if fs.Changed("seed") {
		e.Seed = f.seed
	}
	if fs.Changed("init") {
		e.Init = f.init
	}
	if fs.Changed("solver") {
		e.Solver = f.solver
	}

	return a.cfg.Validate()
}

// parseInts parses "1,2, 5" into []int. The empty string yields an empty set.
func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", p)
		}
		out = append(out, v)
	}

	return out, nil
}
