// SPDX-License-Identifier: MIT

package pivot

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
)

// Graph is a thresholded correlation graph over all N nodes.
//   - Correlation is the N×N Pearson matrix of the pivot traffic columns,
//     with undefined (zero-variance) entries scrubbed to 0.
//   - Adjacency[i][j] = Correlation[i][j] > threshold; the diagonal follows the
//     same rule.
type Graph struct {
	Adjacency   [][]bool
	Correlation *matrix.Dense
	Threshold   float64
}

// Edge is an unordered node pair of the correlation graph.
type Edge struct {
	I           int     `json:"i" yaml:"i"`
	J           int     `json:"j" yaml:"j"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
}

// CorrelationGraph correlates per-snapshot pivot traffic across nodes.
// With T < 2 no variance is observable and the correlation is all zero.
// Errors: snapshot.ErrConfiguration family, ErrPivotOutOfRange, ErrInvalidThreshold.
func CorrelationGraph(seq snapshot.Sequence, pivots []int, threshold float64) (*Graph, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, ErrInvalidThreshold
	}
	traffic, err := Traffic(seq, pivots)
	if err != nil {
		return nil, err
	}
	n := traffic.Cols()

	var corr *matrix.Dense
	if traffic.Rows() < 2 {
		if corr, err = matrix.NewDense(n, n); err != nil {
			return nil, fmt.Errorf("pivot: %w", err)
		}
	} else {
		if corr, _, _, err = matrix.Correlation(traffic); err != nil {
			return nil, fmt.Errorf("pivot: %w", err)
		}
		// Zero-variance columns already come back as 0; this covers the rest.
		if corr, err = matrix.ReplaceInfNaN(corr, 0); err != nil {
			return nil, fmt.Errorf("pivot: %w", err)
		}
	}

	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		row := corr.RawRow(i)
		for j, v := range row {
			adj[i][j] = v > threshold
		}
	}

	return &Graph{Adjacency: adj, Correlation: corr, Threshold: threshold}, nil
}

// Edges lists the connected pairs i < j in row-major order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for i := range g.Adjacency {
		for j := i + 1; j < len(g.Adjacency[i]); j++ {
			if g.Adjacency[i][j] {
				v, _ := g.Correlation.At(i, j)
				out = append(out, Edge{I: i, J: j, Correlation: v})
			}
		}
	}

	return out
}

// Degree counts the neighbours of node i, excluding i itself.
// It returns 0 for an out-of-range node.
func (g *Graph) Degree(i int) int {
	if i < 0 || i >= len(g.Adjacency) {
		return 0
	}
	d := 0
	for j, ok := range g.Adjacency[i] {
		if ok && j != i {
			d++
		}
	}

	return d
}
