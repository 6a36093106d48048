// SPDX-License-Identifier: MIT

package qp

import (
	"fmt"
	"math"
)

// bisectionSteps bounds the multiplier search; 200 halvings exhaust float64.
const bisectionSteps = 200

// Project writes into dst the Euclidean projection of v onto
// {x : aᵀx = b, lb ≤ x ≤ ub}.
//
// Implementation:
//   - Stage 1: feasibility: b must lie in [Σ min(aᵢlbᵢ, aᵢubᵢ), Σ max(...)].
//   - Stage 2: x(λ) = clip(v − λa) gives a non-increasing aᵀx(λ); bisect λ
//     between the extreme breakpoints.
//   - Stage 3: refine λ in closed form on the free set found at the bisection
//     point, so the equality holds to rounding.
//
// Errors: ErrInfeasible.
// Complexity: O(n·bisectionSteps) worst case.
func Project(dst, v, a []float64, b float64, lb, ub []float64) error {
	n := len(v)
	var lo, hi, scale float64
	allZero := true
	for i := 0; i < n; i++ {
		p, q := a[i]*lb[i], a[i]*ub[i]
		lo += math.Min(p, q)
		hi += math.Max(p, q)
		scale += math.Abs(p) + math.Abs(q)
		if a[i] != 0 {
			allZero = false
		}
	}
	tol := 1e-9 * (1 + scale + math.Abs(b))
	if b < lo-tol || b > hi+tol {
		return fmt.Errorf("%w: aᵀx=%g outside attainable [%g, %g]", ErrInfeasible, b, lo, hi)
	}
	if allZero {
		clipInto(dst, v, a, 0, lb, ub)
		return nil
	}

	lamLo, lamHi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		if a[i] == 0 {
			continue
		}
		for _, bp := range [2]float64{(v[i] - lb[i]) / a[i], (v[i] - ub[i]) / a[i]} {
			lamLo = math.Min(lamLo, bp)
			lamHi = math.Max(lamHi, bp)
		}
	}

	residual := func(lam float64) float64 {
		clipInto(dst, v, a, lam, lb, ub)
		var s float64
		for i := 0; i < n; i++ {
			s += a[i] * dst[i]
		}
		return s - b
	}

	lam := lamLo
	for k := 0; k < bisectionSteps && lamHi > lamLo; k++ {
		lam = 0.5 * (lamLo + lamHi)
		if lam == lamLo || lam == lamHi {
			break
		}
		if residual(lam) > 0 {
			lamLo = lam
		} else {
			lamHi = lam
		}
	}

	// Closed-form λ on the free set at the bisection point.
	clipInto(dst, v, a, lam, lb, ub)
	var num, den float64
	for i := 0; i < n; i++ {
		if a[i] != 0 && dst[i] > lb[i] && dst[i] < ub[i] {
			num += a[i] * v[i]
			den += a[i] * a[i]
		} else {
			num += a[i] * dst[i]
		}
	}
	if den > 0 {
		clipInto(dst, v, a, (num-b)/den, lb, ub)
	}

	return nil
}

// clipInto writes clip(v − λa, lb, ub) into dst.
func clipInto(dst, v, a []float64, lam float64, lb, ub []float64) {
	for i := range v {
		x := v[i] - lam*a[i]
		if x < lb[i] {
			x = lb[i]
		} else if x > ub[i] {
			x = ub[i]
		}
		dst[i] = x
	}
}
