// SPDX-License-Identifier: MIT

package qp_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/katalvlaran/sbdet/qp"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltIns(t *testing.T) {
	require.Subset(t, qp.Names(), []string{"active-set", "pgd", "softmax"})

	s, err := qp.Lookup("")
	require.NoError(t, err)
	require.Equal(t, qp.DefaultSolver, s.Name())

	s, err = qp.Lookup("active-set")
	require.NoError(t, err)
	require.Equal(t, "active-set", s.Name())
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := qp.Lookup("cplex")
	require.ErrorIs(t, err, qp.ErrUnknownSolver)
	require.ErrorContains(t, err, "cplex")
}

type namedSolver struct {
	qp.Solver
	name string
}

func (n namedSolver) Name() string { return n.name }

func TestRegistry_RegisterCustom(t *testing.T) {
	name := fmt.Sprintf("pgd-loose-%d", time.Now().UnixNano())
	custom := namedSolver{Solver: qp.NewPGD(qp.WithTolerance(1e-8)), name: name}
	require.NoError(t, qp.Register(custom))
	require.ErrorIs(t, qp.Register(custom), qp.ErrDuplicateSolver)
	require.ErrorIs(t, qp.Register(nil), qp.ErrInvalidProblem)

	got, err := qp.Lookup(name)
	require.NoError(t, err)
	require.Equal(t, name, got.Name())
	require.Contains(t, qp.Names(), name)
}
