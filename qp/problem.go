// SPDX-License-Identifier: MIT

package qp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Problem is min ½xᵀHx + fᵀx s.t. Aeqᵀx = Beq, Lb ≤ x ≤ Ub.
// X0 is an optional warm start; it is projected onto the feasible set first.
type Problem struct {
	H      mat.Symmetric
	F      []float64
	Aeq    []float64
	Beq    float64
	Lb, Ub []float64
	X0     []float64
}

// Simplex returns the problem over {x : Σx = 1, 0 ≤ x ≤ 1} with warm start x0.
func Simplex(h mat.Symmetric, f, x0 []float64) Problem {
	n := len(f)
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	return Problem{
		H:   h,
		F:   f,
		Aeq: ones,
		Beq: 1,
		Lb:  make([]float64, n),
		Ub:  append([]float64(nil), ones...),
		X0:  x0,
	}
}

// Dim returns the number of variables.
func (p Problem) Dim() int { return len(p.F) }

// Validate checks shapes and finiteness. It does not check feasibility.
// Errors: ErrInvalidProblem.
func (p Problem) Validate() error {
	if p.H == nil {
		return fmt.Errorf("%w: nil H", ErrInvalidProblem)
	}
	n := p.H.SymmetricDim()
	if n == 0 {
		return fmt.Errorf("%w: empty problem", ErrInvalidProblem)
	}
	vectors := []struct {
		name string
		v    []float64
	}{{"f", p.F}, {"aeq", p.Aeq}, {"lb", p.Lb}, {"ub", p.Ub}}
	for _, vec := range vectors {
		if len(vec.v) != n {
			return fmt.Errorf("%w: len(%s)=%d, want %d", ErrInvalidProblem, vec.name, len(vec.v), n)
		}
		if !allFinite(vec.v) {
			return fmt.Errorf("%w: %s has NaN or Inf", ErrInvalidProblem, vec.name)
		}
	}
	if p.X0 != nil && len(p.X0) != n {
		return fmt.Errorf("%w: len(x0)=%d, want %d", ErrInvalidProblem, len(p.X0), n)
	}
	if p.X0 != nil && !allFinite(p.X0) {
		return fmt.Errorf("%w: x0 has NaN or Inf", ErrInvalidProblem)
	}
	if isNonFinite(p.Beq) {
		return fmt.Errorf("%w: beq is not finite", ErrInvalidProblem)
	}
	for i := 0; i < n; i++ {
		if p.Lb[i] > p.Ub[i] {
			return fmt.Errorf("%w: lb[%d]=%g > ub[%d]=%g", ErrInvalidProblem, i, p.Lb[i], i, p.Ub[i])
		}
		for j := i; j < n; j++ {
			if isNonFinite(p.H.At(i, j)) {
				return fmt.Errorf("%w: H(%d,%d) is not finite", ErrInvalidProblem, i, j)
			}
		}
	}

	return nil
}

// Objective evaluates ½xᵀHx + fᵀx.
func (p Problem) Objective(x []float64) float64 {
	hx := make([]float64, len(x))
	p.mulH(hx, x)

	return 0.5*floats.Dot(x, hx) + floats.Dot(p.F, x)
}

// Gradient writes Hx + f into dst and returns it. dst may be nil.
func (p Problem) Gradient(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	p.mulH(dst, x)
	floats.Add(dst, p.F)

	return dst
}

// mulH writes H·x into dst; dst and x must not alias.
func (p Problem) mulH(dst, x []float64) {
	n := len(x)
	out := mat.NewVecDense(n, dst)
	out.MulVec(p.H, mat.NewVecDense(n, x))
}

// start returns the warm start projected onto the feasible set, or the
// projection of the box midpoint when no warm start was given.
func (p Problem) start() ([]float64, error) {
	n := p.Dim()
	v := make([]float64, n)
	if p.X0 != nil {
		copy(v, p.X0)
	} else {
		for i := range v {
			v[i] = 0.5 * (p.Lb[i] + p.Ub[i])
		}
	}
	x := make([]float64, n)
	if err := Project(x, v, p.Aeq, p.Beq, p.Lb, p.Ub); err != nil {
		return nil, err
	}

	return x, nil
}

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if isNonFinite(v) {
			return false
		}
	}

	return true
}

func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
