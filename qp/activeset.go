// SPDX-License-Identifier: MIT

package qp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	nameActiveSet = "active-set"

	// defaultActiveSetIterations caps working-set changes; each one is a KKT solve.
	defaultActiveSetIterations = 5000

	// rankTol is the relative singular-value cutoff of the KKT solve.
	rankTol = 1e-12

	// consistencyTol is the relative KKT residual above which the system is
	// treated as inconsistent (a zero-curvature descent ray exists).
	consistencyTol = 1e-9
)

type boundState uint8

const (
	free boundState = iota
	atLower
	atUpper
)

// ActiveSet is a primal active-set backend. Bound constraints form the
// working set; the equality row is always active. Every subproblem
//
//	[H_FF  a_F] [p]   [−g_F]
//	[a_Fᵀ   0 ] [ν] = [  0 ]
//
// is solved by truncated SVD, which copes with singular H. An inconsistent
// system yields a zero-curvature descent ray that is followed to the first
// blocking bound.
type ActiveSet struct {
	opts options
}

// NewActiveSet returns an ActiveSet backend.
func NewActiveSet(opts ...Option) *ActiveSet {
	return &ActiveSet{opts: gatherOptions(defaultActiveSetIterations, opts...)}
}

// Name implements Solver.
func (s *ActiveSet) Name() string { return nameActiveSet }

// Solve implements Solver.
// Errors: ErrInvalidProblem, ErrInfeasible, ErrUnbounded, ErrNotConverged.
func (s *ActiveSet) Solve(p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	x, err := p.start()
	if err != nil {
		return Result{}, err
	}
	n := p.Dim()
	state := make([]boundState, n)
	for i := 0; i < n; i++ {
		switch {
		case x[i] <= p.Lb[i]:
			x[i], state[i] = p.Lb[i], atLower
		case x[i] >= p.Ub[i]:
			x[i], state[i] = p.Ub[i], atUpper
		}
	}
	ensureFree(state, p)

	g := make([]float64, n)
	tol := s.opts.tol
	for it := 1; it <= s.opts.maxIter; it++ {
		p.Gradient(g, x)
		idx := freeIndices(state)
		step, nu, ray, err := kktStep(p, g, idx)
		if err != nil {
			return Result{}, err
		}

		if ray {
			alpha, block := ratioTest(x, step, idx, p, math.Inf(1))
			if block < 0 {
				return Result{}, ErrUnbounded
			}
			move(x, step, idx, alpha, p)
			fix(state, x, block, idx, p)
			continue
		}

		if maxAbs(step) <= tol*(1+floats.Norm(x, math.Inf(1))) {
			release := worstMultiplier(state, g, nu, p, tol*(1+floats.Norm(g, math.Inf(1))))
			if release < 0 {
				return Result{X: x, F: p.Objective(x), Iterations: it, Solver: nameActiveSet}, nil
			}
			state[release] = free
			continue
		}

		alpha, block := ratioTest(x, step, idx, p, 1)
		move(x, step, idx, alpha, p)
		if block >= 0 {
			fix(state, x, block, idx, p)
		}
	}

	return Result{}, ErrNotConverged
}

// kktStep returns the free-variable step, the equality multiplier and whether
// the step is a descent ray (inconsistent KKT system).
func kktStep(p Problem, g []float64, idx []int) ([]float64, float64, bool, error) {
	m := len(idx)
	k := mat.NewDense(m+1, m+1, nil)
	rhs := make([]float64, m+1)
	for r, i := range idx {
		for c, j := range idx {
			k.Set(r, c, p.H.At(i, j))
		}
		k.Set(r, m, p.Aeq[i])
		k.Set(m, r, p.Aeq[i])
		rhs[r] = -g[i]
	}

	var svd mat.SVD
	if !svd.Factorize(k, mat.SVDThin) {
		return nil, 0, false, fmt.Errorf("%w: KKT factorization failed", ErrNotConverged)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vals := svd.Values(nil)

	sol := make([]float64, m+1)
	for c := range vals {
		if vals[c] <= rankTol*vals[0] || vals[c] == 0 {
			break
		}
		var proj float64
		for r := 0; r <= m; r++ {
			proj += u.At(r, c) * rhs[r]
		}
		proj /= vals[c]
		for r := 0; r <= m; r++ {
			sol[r] += v.At(r, c) * proj
		}
	}

	// residual = rhs − K·sol lies in null(K) when the system is inconsistent.
	res := make([]float64, m+1)
	mat.NewVecDense(m+1, res).MulVec(k, mat.NewVecDense(m+1, sol))
	for r := range res {
		res[r] = rhs[r] - res[r]
	}
	if floats.Norm(res, 2) > consistencyTol*(1+floats.Norm(rhs, 2)) {
		return res[:m], 0, true, nil
	}

	return sol[:m], sol[m], false, nil
}

// ratioTest returns the largest α ≤ limit keeping x + α·d inside the box and
// the blocking variable (position in idx), or -1 if nothing blocks.
func ratioTest(x, d []float64, idx []int, p Problem, limit float64) (float64, int) {
	alpha, block := limit, -1
	for r, i := range idx {
		var a float64
		switch {
		case d[r] < 0:
			a = (p.Lb[i] - x[i]) / d[r]
		case d[r] > 0:
			a = (p.Ub[i] - x[i]) / d[r]
		default:
			continue
		}
		if a < alpha {
			alpha, block = math.Max(a, 0), r
		}
	}

	return alpha, block
}

func move(x, d []float64, idx []int, alpha float64, p Problem) {
	for r, i := range idx {
		x[i] += alpha * d[r]
		x[i] = math.Min(math.Max(x[i], p.Lb[i]), p.Ub[i])
	}
}

// fix adds idx[block] to the working set, unless that would leave no free
// variable carrying the equality row.
func fix(state []boundState, x []float64, block int, idx []int, p Problem) {
	i := idx[block]
	carriers := 0
	for _, j := range idx {
		if p.Aeq[j] != 0 {
			carriers++
		}
	}
	if carriers <= 1 && p.Aeq[i] != 0 {
		return
	}
	if math.Abs(x[i]-p.Lb[i]) <= math.Abs(x[i]-p.Ub[i]) {
		x[i], state[i] = p.Lb[i], atLower
	} else {
		x[i], state[i] = p.Ub[i], atUpper
	}
}

// worstMultiplier returns the bound whose multiplier g_i + ν a_i has the wrong
// sign by the largest margin, or -1 if all are within tol.
func worstMultiplier(state []boundState, g []float64, nu float64, p Problem, tol float64) int {
	worst, margin := -1, tol
	for i, st := range state {
		if st == free || p.Lb[i] == p.Ub[i] {
			continue
		}
		mu := g[i] + nu*p.Aeq[i]
		var viol float64
		if st == atLower {
			viol = -mu
		} else {
			viol = mu
		}
		if viol > margin {
			worst, margin = i, viol
		}
	}

	return worst
}

// ensureFree frees one equality carrier when the start is a vertex.
func ensureFree(state []boundState, p Problem) {
	for i, st := range state {
		if st == free && p.Aeq[i] != 0 {
			return
		}
	}
	for i := range state {
		if p.Aeq[i] != 0 && p.Lb[i] < p.Ub[i] {
			state[i] = free
			return
		}
	}
}

func freeIndices(state []boundState) []int {
	idx := make([]int, 0, len(state))
	for i, st := range state {
		if st == free {
			idx = append(idx, i)
		}
	}

	return idx
}

func maxAbs(xs []float64) float64 {
	var m float64
	for _, v := range xs {
		m = math.Max(m, math.Abs(v))
	}

	return m
}
