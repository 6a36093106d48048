// SPDX-License-Identifier: MIT

package gcm_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/katalvlaran/sbdet/builder"
	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/qp"
	"github.com/katalvlaran/sbdet/snapshot"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/floats"
)

// EstimatorSuite exercises Estimate under the documented scenarios.
type EstimatorSuite struct {
	suite.Suite
}

func (s *EstimatorSuite) requireSimplex(w []float64) {
	for _, v := range w {
		s.GreaterOrEqual(v, 0.0)
		s.LessOrEqual(v, 1.0)
	}
	s.InDelta(1.0, floats.Sum(w), 1e-9)
}

// TestTwoStepScenario runs the N=2, T=2 fixture to termination.
func (s *EstimatorSuite) TestTwoStepScenario() {
	tr, err := gcm.Estimate(twoStep(s.T()), gcm.WithSeed(42))
	require.NoError(s.T(), err)
	s.Len(tr.Weights, 2)
	s.requireSimplex(tr.Weights)
	s.Len(tr.Errors, tr.Iterations)
	s.LessOrEqual(tr.Iterations, gcm.DefaultMaxIterations)
	if tr.Converged {
		s.Less(tr.LastError(), gcm.DefaultTolerance)
	} else {
		s.Equal(gcm.DefaultMaxIterations, tr.Iterations)
	}
	s.Equal(2, tr.N)
	s.Equal(2, tr.T)
	s.Equal(qp.DefaultSolver, tr.Solver)
	s.NotEmpty(tr.RunID)
}

// TestIdenticalSnapshotsConvergeImmediately: every snapshot explains the
// aggregate equally well, so the first solve keeps the uniform start.
func (s *EstimatorSuite) TestIdenticalSnapshotsConvergeImmediately() {
	for _, name := range builtinSolvers(s.T()) {
		for _, start := range []gcm.Option{gcm.WithInit(gcm.InitUniform), gcm.WithSeed(9), gcm.WithSeed(123)} {
			tr, err := gcm.Estimate(identical(s.T(), 4), start, gcm.WithSolver(name))
			require.NoError(s.T(), err, name)
			s.True(tr.Converged, name)
			s.Equal(1, tr.Iterations, name)
			s.InDeltaSlice([]float64{0.25, 0.25, 0.25, 0.25}, tr.Weights, 1e-9, name)
		}
	}
}

// TestEverySolverOnRandomTraffic runs each built-in backend to termination on
// random background sequences and a botnet sequence.
func (s *EstimatorSuite) TestEverySolverOnRandomTraffic() {
	rng := rand.New(rand.NewSource(11))
	var seqs []snapshot.Sequence
	for k := 0; k < 12; k++ {
		n, t := 3+rng.Intn(10), 2+rng.Intn(10)
		seq, err := builder.Background(n, t, 0.5, builder.WithRand(rng), builder.WithUniformWeight(0.5, 5))
		require.NoError(s.T(), err)
		seqs = append(seqs, seq)
	}
	schedule, err := builder.Pulse(12, 4, 0.5)
	require.NoError(s.T(), err)
	bot, err := builder.Botnet(20, 12, 0.2, 0, []int{1, 2, 3, 4, 5}, schedule, builder.WithSeed(3))
	require.NoError(s.T(), err)
	seqs = append(seqs, bot)

	for _, name := range builtinSolvers(s.T()) {
		for i, seq := range seqs {
			tr, err := gcm.Estimate(seq, gcm.WithSolver(name), gcm.WithSeed(int64(i+1)))
			require.NoError(s.T(), err, "%s sequence %d", name, i)
			s.Equal(name, tr.Solver)
			s.requireSimplex(tr.Weights)
		}
	}
}

// TestSeededRunsAreReproducible checks bit-for-bit equal traces.
func (s *EstimatorSuite) TestSeededRunsAreReproducible() {
	seq := twoStep(s.T())
	a, err := gcm.Estimate(seq, gcm.WithSeed(7))
	require.NoError(s.T(), err)
	b, err := gcm.Estimate(seq, gcm.WithSeed(7))
	require.NoError(s.T(), err)
	s.Equal(a.Errors, b.Errors)
	s.Equal(a.Weights, b.Weights)
	s.Equal(a.Objective, b.Objective)
	s.NotEqual(a.RunID, b.RunID)

	c, err := gcm.Estimate(seq, gcm.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(s.T(), err)
	s.Equal(a.Weights, c.Weights)

	u1, err := gcm.Estimate(seq, gcm.WithInit(gcm.InitUniform))
	require.NoError(s.T(), err)
	u2, err := gcm.Estimate(seq, gcm.WithInit(gcm.InitUniform), gcm.WithSeed(99))
	require.NoError(s.T(), err)
	s.Equal(u1.Weights, u2.Weights)
	s.Equal("uniform", u1.Init)
}

// TestSingleSnapshot short-circuits to [1].
func (s *EstimatorSuite) TestSingleSnapshot() {
	seq, err := snapshot.FromRows([][][]float64{{{0, 1}, {1, 0}}})
	require.NoError(s.T(), err)
	tr, err := gcm.Estimate(seq)
	require.NoError(s.T(), err)
	s.Equal([]float64{1}, tr.Weights)
	s.Empty(tr.Errors)
	s.True(tr.Converged)
	s.Equal(0, tr.Iterations)

	tr, err = gcm.Estimate(twoStep(s.T()), gcm.WithMaxSnapshots(1))
	require.NoError(s.T(), err)
	s.Equal(1, tr.T)
	s.Equal([]float64{1}, tr.Weights)
}

// TestIterationCap stops after exactly n solves when ε is unreachable.
func (s *EstimatorSuite) TestIterationCap() {
	tr, err := gcm.Estimate(twoStep(s.T()), gcm.WithMaxIterations(1), gcm.WithTolerance(1e-300))
	require.NoError(s.T(), err)
	s.Equal(1, tr.Iterations)
	s.Len(tr.Errors, 1)
	s.requireSimplex(tr.Weights)
}

// TestConfigurationErrors covers empty and mismatched sequences.
func (s *EstimatorSuite) TestConfigurationErrors() {
	_, err := gcm.Estimate(nil)
	s.ErrorIs(err, snapshot.ErrConfiguration)
	s.ErrorIs(err, snapshot.ErrEmptySequence)

	seq := twoStep(s.T())
	big, err := snapshot.FromRows([][][]float64{{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}})
	require.NoError(s.T(), err)
	_, err = gcm.Estimate(append(seq, big...))
	s.ErrorIs(err, snapshot.ErrSizeMismatch)

	_, err = gcm.Estimate(seq, gcm.WithSolver("cplex"))
	s.ErrorIs(err, qp.ErrUnknownSolver)
}

// TestSolverFailureAborts checks that a failed solve ends the run.
func (s *EstimatorSuite) TestSolverFailureAborts() {
	err := qp.Register(failingSolver{})
	if err != nil {
		require.ErrorIs(s.T(), err, qp.ErrDuplicateSolver)
	}
	obs := &recorder{}
	tr, err := gcm.Estimate(twoStep(s.T()), gcm.WithSolver(failingSolver{}.Name()), gcm.WithObserver(obs))
	s.Nil(tr)
	s.ErrorIs(err, qp.ErrSolverFailure)
	s.ErrorIs(err, qp.ErrInfeasible)
	s.Equal(0, obs.iterations)
	s.Equal(0, obs.finished)
}

// TestObserverAndLogger checks hook ordering and structured log output.
func (s *EstimatorSuite) TestObserverAndLogger() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a, b := &recorder{}, &recorder{}

	tr, err := gcm.Estimate(twoStep(s.T()),
		gcm.WithObserver(gcm.MultiObserver{a, nil, b}),
		gcm.WithLogger(logger),
	)
	require.NoError(s.T(), err)
	for _, r := range []*recorder{a, b} {
		s.Equal(1, r.started)
		s.Equal(tr.Iterations, r.iterations)
		s.Equal(1, r.finished)
		s.Equal([3]int{2, 2, gcm.DefaultMaxIterations}, r.start)
		s.Same(tr, r.trace)
	}
	s.Contains(buf.String(), "estimator finished")
	s.Contains(buf.String(), "run_id="+tr.RunID)
	s.Contains(buf.String(), "iteration=0")
}

func TestEstimatorSuite(t *testing.T) {
	suite.Run(t, new(EstimatorSuite))
}

func TestOptions_Panic(t *testing.T) {
	require.Panics(t, func() { gcm.WithTolerance(0) })
	require.Panics(t, func() { gcm.WithMaxIterations(0) })
	require.Panics(t, func() { gcm.WithMaxSnapshots(-1) })
	require.Panics(t, func() { gcm.WithRand(nil) })
	require.Panics(t, func() { gcm.WithInit(gcm.InitMode(7)) })
}

// builtinSolvers lists the registered backends, leaving out test doubles.
func builtinSolvers(t *testing.T) []string {
	var names []string
	for _, name := range qp.Names() {
		if name != (failingSolver{}).Name() {
			names = append(names, name)
		}
	}
	require.Subset(t, names, []string{"pgd", "active-set", "softmax"})

	return names
}

type failingSolver struct{}

func (failingSolver) Name() string { return "always-infeasible" }

func (failingSolver) Solve(qp.Problem) (qp.Result, error) {
	return qp.Result{}, qp.ErrInfeasible
}

type recorder struct {
	started, iterations, finished int
	start                         [3]int
	trace                         *gcm.Trace
}

func (r *recorder) OnStart(n, t, maxIter int) {
	r.started++
	r.start = [3]int{n, t, maxIter}
}

func (r *recorder) OnIteration(int, float64, float64) { r.iterations++ }

func (r *recorder) OnFinish(tr *gcm.Trace) {
	r.finished++
	r.trace = tr
}
