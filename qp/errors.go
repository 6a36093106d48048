// SPDX-License-Identifier: MIT

package qp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProblem indicates malformed input: nil H, length mismatches,
	// non-finite values or lb > ub.
	ErrInvalidProblem = errors.New("qp: invalid problem")

	// ErrUnknownSolver indicates that no backend is registered under a name.
	ErrUnknownSolver = errors.New("qp: unknown solver")

	// ErrDuplicateSolver indicates a second registration under the same name.
	ErrDuplicateSolver = errors.New("qp: solver already registered")

	// ErrSolverFailure is the category of every failed solve.
	ErrSolverFailure = errors.New("qp: solver failure")
)

var (
	// ErrInfeasible indicates that no x satisfies aᵀx = b and lb ≤ x ≤ ub.
	ErrInfeasible = fmt.Errorf("%w: infeasible", ErrSolverFailure)

	// ErrUnbounded indicates a descent ray that no bound blocks.
	ErrUnbounded = fmt.Errorf("%w: unbounded", ErrSolverFailure)

	// ErrNotConverged indicates that the iteration budget ran out.
	ErrNotConverged = fmt.Errorf("%w: not converged", ErrSolverFailure)

	// ErrUnsupportedProblem indicates a problem shape the backend cannot model.
	ErrUnsupportedProblem = fmt.Errorf("%w: unsupported problem", ErrSolverFailure)
)
