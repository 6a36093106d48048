// SPDX-License-Identifier: MIT

package qp

import "math"

// Defaults shared by the iterative backends.
const (
	// DefaultTolerance is the stationarity tolerance of every backend.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations caps the major iterations of a single solve.
	DefaultMaxIterations = 50000
)

const (
	panicTolerance     = "qp: WithTolerance: tol must be finite and > 0"
	panicMaxIterations = "qp: WithMaxIterations: n must be > 0"
)

// Option configures a backend constructor.
type Option func(*options)

type options struct {
	tol     float64
	maxIter int
}

// WithTolerance sets the stationarity tolerance. Panics unless tol is finite and > 0.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}

	return func(o *options) { o.tol = tol }
}

// WithMaxIterations caps the major iterations. Panics unless n > 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *options) { o.maxIter = n }
}

func gatherOptions(maxIter int, opts ...Option) options {
	o := options{tol: DefaultTolerance, maxIter: maxIter}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
