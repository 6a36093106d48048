// SPDX-License-Identifier: MIT

package gcm

import (
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
)

// Coefficients builds the N²×T coefficient tensor of seq.
// Row i·N+j, column t holds k_out(i,t)·k_in(j,t)/m(t)². A step with zero
// total mass contributes a zero column.
//
// Errors: snapshot.ErrConfiguration family.
// Complexity: O(T·N²) time and space.
func Coefficients(seq snapshot.Sequence) (*matrix.Dense, error) {
	deg, err := snapshot.ComputeDegrees(seq)
	if err != nil {
		return nil, err
	}
	n, t := deg.Out.Rows(), deg.Out.Cols()
	c, err := matrix.NewDense(n*n, t)
	if err != nil {
		return nil, fmt.Errorf("gcm: coefficients: %w", err)
	}

	col := make([]float64, n*n)
	for s := 0; s < t; s++ {
		kout, _ := deg.Out.Col(s)
		kin, _ := deg.In.Col(s)
		m2 := deg.Mass[s] * deg.Mass[s]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				col[i*n+j] = kout[i] * kin[j] / m2
			}
		}
		matrix.ScrubNonFinite(col)
		if err = c.SetCol(s, col); err != nil {
			return nil, fmt.Errorf("gcm: coefficients: %w", err)
		}
	}

	return c, nil
}
