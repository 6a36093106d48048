// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
)

// Degrees holds the per-step degree statistics of a Sequence.
//   - Out[i,t] = Σ_j A_t[i,j] (row sums, out-degree).
//   - In[j,t]  = Σ_i A_t[i,j] (column sums, in-degree).
//   - Mass[t]  = Σ_j In[j,t], the total degree mass of step t.
type Degrees struct {
	Out  *matrix.Dense // N×T
	In   *matrix.Dense // N×T
	Mass []float64     // len T
}

// ComputeDegrees validates seq and collects its degree statistics.
// Errors: any Validate error.
// Complexity: O(T·N²) dense, O(T·nnz) sparse.
func ComputeDegrees(seq Sequence) (*Degrees, error) {
	n, t, err := seq.Validate()
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(n, t)
	if err != nil {
		return nil, err
	}
	in, err := matrix.NewDense(n, t)
	if err != nil {
		return nil, err
	}
	mass := make([]float64, t)

	for k, m := range seq {
		rs, err := matrix.RowSums(m)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", k, err)
		}
		cs, err := matrix.ColSums(m)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", k, err)
		}
		if err = out.SetCol(k, rs); err != nil {
			return nil, err
		}
		if err = in.SetCol(k, cs); err != nil {
			return nil, err
		}
		for _, v := range cs {
			mass[k] += v
		}
	}

	return &Degrees{Out: out, In: in, Mass: mass}, nil
}
