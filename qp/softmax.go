// SPDX-License-Identifier: MIT

package qp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

const (
	nameSoftmax = "softmax"

	defaultSoftmaxIterations = 2000

	// minShare floors warm-start shares before taking logarithms.
	minShare = 1e-12
)

// Softmax solves scaled-simplex problems {x : Σ aᵢxᵢ = b, x ≥ 0} with a
// constant positive a and upper bounds that never bind, by minimizing over z
// with x = s·softmax(z), s = b/a. The unconstrained problem runs on gonum's
// L-BFGS.
//
// Optima on the simplex boundary are only approached as z → −∞, where the
// L-BFGS line search stalls. The best L-BFGS point is therefore finished by a
// projected-gradient polish, which settles vanishing weights exactly; a stall
// is not a failure as long as the polish reaches stationarity.
type Softmax struct {
	opts options
}

// NewSoftmax returns a Softmax backend.
func NewSoftmax(opts ...Option) *Softmax {
	return &Softmax{opts: gatherOptions(defaultSoftmaxIterations, opts...)}
}

// Name implements Solver.
func (s *Softmax) Name() string { return nameSoftmax }

// Solve implements Solver.
// Errors: ErrInvalidProblem, ErrUnsupportedProblem, ErrInfeasible, ErrNotConverged.
func (s *Softmax) Solve(p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	scale, err := simplexScale(p)
	if err != nil {
		return Result{}, err
	}
	x0, err := p.start()
	if err != nil {
		return Result{}, err
	}

	n := p.Dim()
	z0 := make([]float64, n)
	for i, v := range x0 {
		z0[i] = math.Log(math.Max(v/scale, minShare))
	}
	x := make([]float64, n)
	g := make([]float64, n)
	sigma := make([]float64, n)

	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			softmaxInto(sigma, z)
			for i := range x {
				x[i] = scale * sigma[i]
			}
			return p.Objective(x)
		},
		Grad: func(grad, z []float64) {
			softmaxInto(sigma, z)
			for i := range x {
				x[i] = scale * sigma[i]
			}
			p.Gradient(g, x)
			var mean float64
			for i := range g {
				mean += sigma[i] * g[i]
			}
			for i := range grad {
				grad[i] = scale * sigma[i] * (g[i] - mean)
			}
		},
	}
	settings := &optimize.Settings{
		GradientThreshold: s.opts.tol,
		MajorIterations:   s.opts.maxIter,
	}
	z, iters := z0, 0
	res, err := optimize.Minimize(problem, z0, settings, &optimize.LBFGS{})
	if res != nil && len(res.X) == n {
		z, iters = res.X, res.MajorIterations
	}
	out := make([]float64, n)
	softmaxInto(sigma, z)
	for i := range out {
		out[i] = scale * sigma[i]
	}
	if !allFinite(out) {
		copy(out, x0)
	}

	warm := p
	warm.X0 = out
	polished, perr := NewPGD(WithTolerance(s.opts.tol)).Solve(warm)
	if perr != nil {
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", perr, err)
		}
		return Result{}, perr
	}

	return Result{
		X:          polished.X,
		F:          polished.F,
		Iterations: iters + polished.Iterations,
		Solver:     nameSoftmax,
	}, nil
}

// simplexScale checks the problem is a scaled simplex and returns s = b/a.
func simplexScale(p Problem) (float64, error) {
	a := p.Aeq[0]
	if !(a > 0) || !(p.Beq > 0) {
		return 0, fmt.Errorf("%w: softmax needs a positive equality row", ErrUnsupportedProblem)
	}
	scale := p.Beq / a
	for i := range p.Aeq {
		if math.Abs(p.Aeq[i]-a) > 1e-12*a {
			return 0, fmt.Errorf("%w: softmax needs a constant equality row", ErrUnsupportedProblem)
		}
		if p.Lb[i] != 0 || p.Ub[i] < scale*(1-1e-12) {
			return 0, fmt.Errorf("%w: softmax needs lb=0 and non-binding ub", ErrUnsupportedProblem)
		}
	}

	return scale, nil
}

// softmaxInto writes the numerically stable softmax of z into dst.
func softmaxInto(dst, z []float64) {
	m := math.Inf(-1)
	for _, v := range z {
		m = math.Max(m, v)
	}
	var sum float64
	for i, v := range z {
		dst[i] = math.Exp(v - m)
		sum += dst[i]
	}
	for i := range dst {
		dst[i] /= sum
	}
}
