// SPDX-License-Identifier: MIT

package snapshot

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
)

// Sequence is an ordered list of T graph snapshots sharing one size N.
// Entry (i,j) of snapshot t is the interaction weight from node i to node j.
type Sequence []matrix.Matrix

// Validate checks the sequence shape and returns (N, T).
// Implementation:
//   - Stage 1: reject an empty sequence.
//   - Stage 2: every snapshot must be non-nil, square and of the first snapshot's size.
//   - Stage 3: every entry must be non-negative.
//
// Errors (all match ErrConfiguration):
//   - ErrEmptySequence, ErrNilSnapshot, ErrNonSquare, ErrSizeMismatch, ErrNegativeWeight.
//
// Complexity: O(T·N²) dense, O(T·nnz) sparse.
func (s Sequence) Validate() (n, t int, err error) {
	if len(s) == 0 {
		return 0, 0, ErrEmptySequence
	}
	for k, m := range s {
		if verr := matrix.ValidateSquare(m); verr != nil {
			if errors.Is(verr, matrix.ErrNilMatrix) {
				return 0, 0, fmt.Errorf("snapshot %d: %w", k, ErrNilSnapshot)
			}
			return 0, 0, fmt.Errorf("snapshot %d is %dx%d: %w", k, m.Rows(), m.Cols(), ErrNonSquare)
		}
		if k == 0 {
			n = m.Rows()
		} else if m.Rows() != n {
			return 0, 0, fmt.Errorf("snapshot %d is %dx%d, want %dx%d: %w", k, m.Rows(), m.Cols(), n, n, ErrSizeMismatch)
		}
		if verr := matrix.ValidateNonNegative(m); verr != nil {
			return 0, 0, fmt.Errorf("snapshot %d: %v: %w", k, verr, ErrNegativeWeight)
		}
	}

	return n, len(s), nil
}

// Dims returns (N, T) without validating entries. N is 0 for an empty sequence.
func (s Sequence) Dims() (n, t int) {
	if len(s) == 0 || s[0] == nil {
		return 0, len(s)
	}

	return s[0].Rows(), len(s)
}

// Truncate returns the first t snapshots. t <= 0 or t >= len(s) keeps all.
// The returned slice shares snapshots with s; nothing is copied.
func (s Sequence) Truncate(t int) Sequence {
	if t <= 0 || t >= len(s) {
		return s
	}

	return s[:t]
}

// FromRows builds a dense Sequence from nested literals, one [][]float64 per step.
// Errors: matrix construction errors (ragged rows, empty snapshot).
func FromRows(steps [][][]float64) (Sequence, error) {
	seq := make(Sequence, len(steps))
	for k, rows := range steps {
		d, err := matrix.NewDenseRows(rows)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", k, err)
		}
		seq[k] = d
	}

	return seq, nil
}
