// SPDX-License-Identifier: MIT

// Package qp solves small convex quadratic programs of the form
//
//	minimize   ½ xᵀHx + fᵀx
//	subject to aᵀx = b,  lb ≤ x ≤ ub
//
// with H symmetric positive semidefinite. This is the one problem shape the
// entropy-maximization estimator needs: a single equality row (Σx = 1) plus
// box bounds.
//
// Backends are registered by name and looked up with Lookup:
//
//   - "pgd" (DefaultSolver): accelerated projected gradient (FISTA with
//     adaptive restart). The projection onto the equality-in-a-box set is
//     exact up to rounding (bisection on the multiplier, then a closed-form
//     refinement on the free set).
//   - "active-set": primal active-set method; each equality-constrained
//     subproblem is solved through a rank-revealing SVD, so singular H is
//     handled without regularization.
//   - "softmax": simplex-only backend. It reparametrizes x = s·softmax(z) and
//     runs gonum's L-BFGS on z. Problems that are not a scaled simplex are
//     rejected with ErrUnsupportedProblem.
//
// Errors. ErrInvalidProblem reports malformed input. Every genuine solve
// failure (ErrInfeasible, ErrUnbounded, ErrNotConverged, ErrUnsupportedProblem)
// also matches ErrSolverFailure. A flat objective or a singular H on a feasible
// problem is not a failure: the solver returns a minimizer (for warm-started
// solvers, typically the warm start itself).
//
// Determinism. All backends are deterministic for identical inputs.
package qp
