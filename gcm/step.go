// SPDX-License-Identifier: MIT

package gcm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/qp"
	"gonum.org/v1/gonum/mat"
)

// StepResult is the outcome of one QP solve.
type StepResult struct {
	Weights    []float64 // next iterate, length T
	Objective  float64   // ½xᵀHx + bᵀx at Weights
	Iterations int       // solver iterations
	Solver     string
}

// BuildProblem formulates the QP around the current weights yp.
// Implementation:
//   - a = C·yp (predicted pair mass).
//   - hc = 1/a with +Inf scrubbed to 0; Wᵀ = ScaleCols(Cᵀ, √hc); H = WᵀW.
//   - b = (log a − 1)ᵀC with −Inf scrubbed to 0 before the product.
//   - Σx = 1, 0 ≤ x ≤ 1, warm start yp.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
// Complexity: O(N²·T²) for H.
func BuildProblem(yp []float64, c *matrix.Dense) (qp.Problem, error) {
	if err := matrix.ValidateNotNil(c); err != nil {
		return qp.Problem{}, fmt.Errorf("gcm: build: %w", err)
	}
	a, err := matrix.MatVec(c, yp)
	if err != nil {
		return qp.Problem{}, fmt.Errorf("gcm: build: %w", err)
	}
	rows, t := c.Rows(), c.Cols()

	hc := make([]float64, rows)
	bc := make([]float64, rows)
	for k, v := range a {
		hc[k] = 1 / v
		bc[k] = math.Log(v) - 1
	}
	matrix.ScrubInf(hc)
	matrix.ScrubInf(bc)

	// Wᵀ = Cᵀ·diag(√hc), so H = WᵀW is the outer product of Wᵀ's rows.
	sq := make([]float64, rows)
	for k, v := range hc {
		sq[k] = math.Sqrt(v)
	}
	ct, err := matrix.Transpose(c)
	if err != nil {
		return qp.Problem{}, fmt.Errorf("gcm: build: %w", err)
	}
	wt, err := matrix.ScaleCols(ct, sq)
	if err != nil {
		return qp.Problem{}, fmt.Errorf("gcm: build: %w", err)
	}
	h := mat.NewSymDense(t, nil)
	h.SymOuterK(1, mat.NewDense(t, rows, wt.Data()))

	b, err := matrix.VecMat(bc, c)
	if err != nil {
		return qp.Problem{}, fmt.Errorf("gcm: build: %w", err)
	}

	return qp.Simplex(h, b, append([]float64(nil), yp...)), nil
}

// Step formulates and solves one QP around yp.
// A nil solver selects qp.DefaultSolver.
// Errors: BuildProblem errors and any solver error (matching qp.ErrSolverFailure
// for genuine solve failures).
func Step(yp []float64, c *matrix.Dense, solver qp.Solver) (StepResult, error) {
	if solver == nil {
		var err error
		if solver, err = qp.Lookup(qp.DefaultSolver); err != nil {
			return StepResult{}, err
		}
	}
	p, err := BuildProblem(yp, c)
	if err != nil {
		return StepResult{}, err
	}
	res, err := solver.Solve(p)
	if err != nil {
		return StepResult{}, fmt.Errorf("gcm: %s: %w", solver.Name(), err)
	}

	return StepResult{
		Weights:    res.X,
		Objective:  res.F,
		Iterations: res.Iterations,
		Solver:     res.Solver,
	}, nil
}
