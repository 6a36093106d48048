// SPDX-License-Identifier: MIT

package sbdet

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/pivot"
	"github.com/katalvlaran/sbdet/snapshot"
)

// Config parameterizes Analyze.
type Config struct {
	// Estimator options, forwarded to gcm.Estimate.
	Estimator []gcm.Option
	// PivotThreshold is the normalized-score cut for pivot.Select.
	PivotThreshold float64
	// CorrThreshold is the edge cut for pivot.CorrelationGraph.
	CorrThreshold float64
}

// Report is everything Analyze derives from one sequence.
type Report struct {
	Trace       *gcm.Trace
	Scores      []float64
	Pivots      []int
	Interaction []float64
	Graph       *pivot.Graph
}

// Analyze estimates snapshot weights, selects pivots, aggregates their
// interaction and builds the correlation graph. Stages after the estimator
// see the sequence truncated to the snapshots the estimator used.
//
// Errors: any stage's error, wrapped with "sbdet: <stage>: %w".
func Analyze(seq snapshot.Sequence, cfg Config) (*Report, error) {
	if !finite(cfg.PivotThreshold) {
		return nil, fmt.Errorf("sbdet: pivot threshold: %w", pivot.ErrInvalidThreshold)
	}
	if !finite(cfg.CorrThreshold) {
		return nil, fmt.Errorf("sbdet: correlation threshold: %w", pivot.ErrInvalidThreshold)
	}

	tr, err := gcm.Estimate(seq, cfg.Estimator...)
	if err != nil {
		return nil, fmt.Errorf("sbdet: estimate: %w", err)
	}
	seq = seq.Truncate(tr.T)

	scores, err := pivot.Scores(seq, tr.Weights)
	if err != nil {
		return nil, fmt.Errorf("sbdet: scores: %w", err)
	}
	pivots, err := pivot.Select(seq, tr.Weights, cfg.PivotThreshold)
	if err != nil {
		return nil, fmt.Errorf("sbdet: select: %w", err)
	}
	inta, err := pivot.Interaction(seq, tr.Weights, pivots)
	if err != nil {
		return nil, fmt.Errorf("sbdet: interaction: %w", err)
	}
	g, err := pivot.CorrelationGraph(seq, pivots, cfg.CorrThreshold)
	if err != nil {
		return nil, fmt.Errorf("sbdet: correlation: %w", err)
	}

	return &Report{Trace: tr, Scores: scores, Pivots: pivots, Interaction: inta, Graph: g}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
