// SPDX-License-Identifier: MIT

package qp

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultSolver names the backend used when no name is given.
const DefaultSolver = "pgd"

// Result is the outcome of a successful solve.
type Result struct {
	X          []float64 // minimizer, feasible to rounding
	F          float64   // objective at X
	Iterations int       // major iterations spent
	Solver     string    // backend name
}

// Solver is a convex QP backend. Implementations must be safe for concurrent
// use by independent Solve calls; the built-ins hold no mutable state.
type Solver interface {
	Name() string
	Solve(p Problem) (Result, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Solver{}
)

// Register makes s available under s.Name().
// Errors: ErrDuplicateSolver when the name is taken, ErrInvalidProblem for a nil solver.
func Register(s Solver) error {
	if s == nil {
		return fmt.Errorf("%w: nil solver", ErrInvalidProblem)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSolver, s.Name())
	}
	registry[s.Name()] = s

	return nil
}

// Lookup returns the backend registered under name; "" selects DefaultSolver.
// Errors: ErrUnknownSolver.
func Lookup(name string) (Solver, error) {
	if name == "" {
		name = DefaultSolver
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSolver, name, namesLocked())
	}

	return s, nil
}

// Names lists the registered backends in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return namesLocked()
}

func namesLocked() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

func init() {
	for _, s := range []Solver{NewPGD(), NewActiveSet(), NewSoftmax()} {
		if err := Register(s); err != nil {
			panic(err)
		}
	}
}
