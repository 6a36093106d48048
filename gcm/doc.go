// SPDX-License-Identifier: MIT

// Package gcm estimates snapshot weights under the Generalized Configuration
// Model by iterated entropy maximization.
//
// Pipeline:
//
//	Coefficients: C[i·N+j, t] = k_out(i,t)·k_in(j,t) / m(t)²
//	Step:         a = C·y, H = (C⊙√(1/a))ᵀ(C⊙√(1/a)), b = (log a − 1)ᵀC
//	              y' = argmin ½xᵀHx + bᵀx  s.t. Σx = 1, 0 ≤ x ≤ 1
//	Estimate:     repeat Step until Σ|y' − y| < ε or the iteration cap.
//
// Zero mass (m(t) = 0), zero predicted mass (a = 0) and log(0) are scrubbed to
// 0 by named steps (matrix.ScrubNonFinite, matrix.ScrubInf); they are never
// surfaced as errors and never leak NaN/Inf into the QP.
//
// Solver failures abort the run and are returned wrapped; they still match
// qp.ErrSolverFailure. Input-shape problems match snapshot.ErrConfiguration.
//
// Randomness: the default initial weights are random but seeded (WithSeed),
// so two runs with identical inputs and options produce identical traces.
package gcm
