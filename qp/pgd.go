// SPDX-License-Identifier: MIT

package qp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const namePGD = "pgd"

// PGD is the accelerated projected-gradient backend (FISTA with gradient-based
// adaptive restart). Step size is 1/L with L = λmax(H).
//
// Convergence is declared when the gradient mapping ‖P(y − ∇f(y)/L) − y‖∞
// falls below tol·(1 + ‖x‖∞).
type PGD struct {
	opts options
}

// NewPGD returns a PGD backend.
func NewPGD(opts ...Option) *PGD {
	return &PGD{opts: gatherOptions(DefaultMaxIterations, opts...)}
}

// Name implements Solver.
func (s *PGD) Name() string { return namePGD }

// Solve implements Solver.
// Errors: ErrInvalidProblem, ErrInfeasible, ErrNotConverged.
func (s *PGD) Solve(p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	x, err := p.start()
	if err != nil {
		return Result{}, err
	}
	n := p.Dim()
	invL := 1 / lipschitz(p.H)

	var (
		y    = append([]float64(nil), x...)
		xn   = make([]float64, n)
		g    = make([]float64, n)
		v    = make([]float64, n)
		t    = 1.0
		beta float64
	)
	for it := 1; it <= s.opts.maxIter; it++ {
		p.Gradient(g, y)
		for i := range v {
			v[i] = y[i] - invL*g[i]
		}
		if err = Project(xn, v, p.Aeq, p.Beq, p.Lb, p.Ub); err != nil {
			return Result{}, err
		}
		if floats.Distance(xn, y, math.Inf(1)) <= s.opts.tol*(1+floats.Norm(xn, math.Inf(1))) {
			return Result{X: xn, F: p.Objective(xn), Iterations: it, Solver: namePGD}, nil
		}

		// Restart when the momentum points against the last step.
		var dir float64
		for i := range xn {
			dir += (y[i] - xn[i]) * (xn[i] - x[i])
		}
		tn := 0.5 * (1 + math.Sqrt(1+4*t*t))
		if dir > 0 {
			t, tn = 1, 1
		}
		beta = (t - 1) / tn
		for i := range y {
			y[i] = xn[i] + beta*(xn[i]-x[i])
		}
		copy(x, xn)
		t = tn
	}

	return Result{}, ErrNotConverged
}

// lipschitz returns λmax(H), or a Gershgorin bound if the eigensolver fails.
// A zero (or numerically negative) bound is replaced by 1.
func lipschitz(h mat.Symmetric) float64 {
	var es mat.EigenSym
	var l float64
	if es.Factorize(h, false) {
		vals := es.Values(nil)
		l = vals[len(vals)-1]
	} else {
		n := h.SymmetricDim()
		for i := 0; i < n; i++ {
			var row float64
			for j := 0; j < n; j++ {
				row += math.Abs(h.At(i, j))
			}
			l = math.Max(l, row)
		}
	}
	if !(l > 0) {
		return 1
	}

	return l
}
