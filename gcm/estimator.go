// SPDX-License-Identifier: MIT

package gcm

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/qp"
	"github.com/katalvlaran/sbdet/snapshot"
	"gonum.org/v1/gonum/floats"
)

// flatTol is the absolute-or-relative tolerance under which two tensor
// columns count as equal.
const flatTol = 1e-14

// Estimator runs the entropy-maximization loop with fixed options.
// An Estimator holds no per-run state; Estimate may be called repeatedly,
// though a shared WithRand source advances between runs.
type Estimator struct {
	opts options
}

// New returns an Estimator configured by opts.
func New(opts ...Option) *Estimator {
	return &Estimator{opts: gatherOptions(opts...)}
}

// Estimate is New(opts...).Estimate(seq).
func Estimate(seq snapshot.Sequence, opts ...Option) (*Trace, error) {
	return New(opts...).Estimate(seq)
}

// Estimate runs the estimator on seq.
// Implementation:
//   - Stage 1: resolve the solver, truncate, validate.
//   - Stage 2: coefficient tensor.
//   - Stage 3: initial weights (seeded random or uniform). When every column
//     of the tensor is the same, as with identical snapshots, the objective
//     is constant on the simplex and any start is a solution; the start is
//     then uniform, whatever the init mode.
//   - Stage 4: solve until Σ|y' − y| < ε or maxIter solves.
//   - Stage 5: clip to [0,1] and renormalize the last iterate.
//
// T = 1 short-circuits to weights [1] with an empty error trace.
//
// Errors:
//   - qp.ErrUnknownSolver; snapshot.ErrConfiguration family.
//   - Any solver failure, wrapped with the iteration index.
func (e *Estimator) Estimate(seq snapshot.Sequence) (*Trace, error) {
	o := e.opts
	solver, err := qp.Lookup(o.solver)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	seq = seq.Truncate(o.maxSnapshots)
	n, t, err := seq.Validate()
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}

	started := time.Now()
	tr := &Trace{
		RunID:  uuid.NewString(),
		Errors: []float64{},
		Solver: solver.Name(),
		Init:   o.init.String(),
		N:      n,
		T:      t,
	}
	log := o.logger.With("run_id", tr.RunID, "solver", tr.Solver)
	log.Debug("estimator started", "n", n, "t", t, "max_iter", o.maxIter, "tol", o.tol)

	c, err := Coefficients(seq)
	if err != nil {
		return nil, err
	}
	o.observer.OnStart(n, t, o.maxIter)

	if t == 1 {
		p, err := BuildProblem([]float64{1}, c)
		if err != nil {
			return nil, err
		}
		tr.Weights = []float64{1}
		tr.Objective = p.Objective(tr.Weights)
		tr.Converged = true

		return e.finish(tr, started), nil
	}

	yp := initialWeights(o, t)
	if flat(c) {
		yp = uniform(t)
		log.Debug("flat objective, starting from uniform weights")
	}
	for it := 0; it < o.maxIter; it++ {
		step, err := Step(yp, c, solver)
		if err != nil {
			log.Error("solve failed", "iteration", it, "err", err)
			return nil, fmt.Errorf("gcm: iteration %d: %w", it, err)
		}
		diff := floats.Distance(step.Weights, yp, 1)
		tr.Errors = append(tr.Errors, diff)
		tr.Objective = step.Objective
		tr.Iterations = it + 1
		o.observer.OnIteration(it, diff, step.Objective)
		log.Debug("iteration", "iteration", it, "err", diff, "objective", step.Objective, "solver_iterations", step.Iterations)

		yp = step.Weights
		if diff < o.tol {
			tr.Converged = true
			break
		}
	}
	tr.Weights = normalize(yp)

	return e.finish(tr, started), nil
}

func (e *Estimator) finish(tr *Trace, started time.Time) *Trace {
	tr.Elapsed = time.Since(started)
	e.opts.observer.OnFinish(tr)
	e.opts.logger.Info("estimator finished",
		"run_id", tr.RunID,
		"iterations", tr.Iterations,
		"converged", tr.Converged,
		"objective", tr.Objective,
		"elapsed", tr.Elapsed,
	)

	return tr
}

// initialWeights returns a point of the simplex per the configured mode.
func initialWeights(o options, t int) []float64 {
	if o.init == InitUniform {
		return uniform(t)
	}
	w := make([]float64, t)
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(o.seed))
	}
	for i := range w {
		w[i] = rng.Float64()
	}

	return normalize(w)
}

func uniform(t int) []float64 {
	w := make([]float64, t)
	for i := range w {
		w[i] = 1 / float64(t)
	}

	return w
}

// flat reports whether all columns of c agree, so that C·y, and with it the
// QP, is the same for every y on the simplex.
func flat(c *matrix.Dense) bool {
	first, err := c.Col(0)
	if err != nil {
		return false
	}
	for s := 1; s < c.Cols(); s++ {
		col, err := c.Col(s)
		if err != nil || !floats.EqualApprox(first, col, flatTol) {
			return false
		}
	}

	return true
}

// normalize clips w to [0,1] in place and rescales it to sum 1.
// A vector with no positive mass becomes uniform.
func normalize(w []float64) []float64 {
	for i, v := range w {
		if v < 0 || math.IsNaN(v) {
			w[i] = 0
		} else if v > 1 {
			w[i] = 1
		}
	}
	sum := floats.Sum(w)
	if sum <= 0 {
		for i := range w {
			w[i] = 1 / float64(len(w))
		}
		return w
	}
	floats.Scale(1/sum, w)

	return w
}
