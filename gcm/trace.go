// SPDX-License-Identifier: MIT

package gcm

import "time"

// Trace is the record of one estimation run.
//   - Errors holds Σ|y' − y| per solve, in order; Iterations == len(Errors).
//   - Weights are the final weights, on the simplex.
//   - Objective is the objective of the last solve.
type Trace struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Errors     []float64     `json:"errors" yaml:"errors"`
	Weights    []float64     `json:"weights" yaml:"weights"`
	Objective  float64       `json:"objective" yaml:"objective"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Converged  bool          `json:"converged" yaml:"converged"`
	Solver     string        `json:"solver" yaml:"solver"`
	Init       string        `json:"init" yaml:"init"`
	N          int           `json:"n" yaml:"n"`
	T          int           `json:"t" yaml:"t"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// LastError returns the final L1 change, or 0 for a trace without solves.
func (tr *Trace) LastError() float64 {
	if len(tr.Errors) == 0 {
		return 0
	}

	return tr.Errors[len(tr.Errors)-1]
}
