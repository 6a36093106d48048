// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (compressed sparse row).
//
// Purpose:
//   - Hold large interaction snapshots where most node pairs never talk.
//   - Implement Matrix so every kernel and the snapshot/pivot layers accept it.
//   - Keep rows sorted by column index so At/Set use binary search.
//
// Complexity quicksheet:
//   - NewSparseFromTriplets: O(nnz log nnz); At: O(log nnz(row));
//     Set (existing cell) O(log nnz(row)); Set (new cell) O(nnz) shift;
//     RowSum: O(nnz(row)); Clone: O(nnz).

package matrix

import (
	"fmt"
	"sort"
)

const (
	ctxSparseAt  = "At"
	ctxSparseSet = "Set"
	ctxTriplets  = "NewSparseFromTriplets"
)

// sparseErrorf mirrors denseErrorf for the CSR layout.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// Triplet is one (row, col, value) entry used to assemble a Sparse matrix.
type Triplet struct {
	Row, Col int
	Value    float64
}

// Sparse is a CSR matrix. Stored zeros are allowed (Set(i,j,0) on a stored
// cell keeps the slot); absent cells read as 0. NaN/Inf are always rejected.
type Sparse struct {
	r, c   int
	rowPtr []int     // len r+1; row i occupies [rowPtr[i], rowPtr[i+1])
	colIdx []int     // column of each stored value, ascending within a row
	vals   []float64 // stored values
}

var _ Matrix = (*Sparse)(nil)

// NewSparse allocates an empty r×c CSR matrix.
// Errors: ErrInvalidDimensions when r<=0 or c<=0.
func NewSparse(rows, cols int) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Sparse{r: rows, c: cols, rowPtr: make([]int, rows+1)}, nil
}

// NewSparseFromTriplets assembles a CSR matrix; duplicate (row,col) entries are summed.
// Implementation:
//   - Stage 1: validate shape, indices and finiteness.
//   - Stage 2: sort a copy of the triplets by (row, col).
//   - Stage 3: compact duplicates and build rowPtr by counting.
//   - Stage 4: reject sums of duplicates that overflowed to ±Inf.
//
// Errors: ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf.
func NewSparseFromTriplets(rows, cols int, ts []Triplet) (*Sparse, error) {
	s, err := NewSparse(rows, cols)
	if err != nil {
		return nil, err
	}
	sorted := make([]Triplet, len(ts))
	copy(sorted, ts)
	for _, t := range sorted {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("%s: (%d,%d): %w", ctxTriplets, t.Row, t.Col, ErrOutOfRange)
		}
		if isNonFinite(t.Value) {
			return nil, fmt.Errorf("%s: (%d,%d): %w", ctxTriplets, t.Row, t.Col, ErrNaNInf)
		}
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s.colIdx = make([]int, 0, len(sorted))
	s.vals = make([]float64, 0, len(sorted))
	counts := make([]int, rows)
	last := -1
	for k, t := range sorted {
		if k > 0 && t.Row == sorted[k-1].Row && t.Col == sorted[k-1].Col {
			s.vals[last] += t.Value
			continue
		}
		s.colIdx = append(s.colIdx, t.Col)
		s.vals = append(s.vals, t.Value)
		last = len(s.vals) - 1
		counts[t.Row]++
	}
	for k, v := range s.vals {
		if isNonFinite(v) {
			return nil, fmt.Errorf("%s: duplicate sum at (%d,%d): %w", ctxTriplets, rowOf(counts, k), s.colIdx[k], ErrNaNInf)
		}
	}
	for i := 0; i < rows; i++ {
		s.rowPtr[i+1] = s.rowPtr[i] + counts[i]
	}

	return s, nil
}

// rowOf maps a storage position back to its row given per-row counts.
func rowOf(counts []int, pos int) int {
	for i, n := range counts {
		if pos < n {
			return i
		}
		pos -= n
	}

	return len(counts) - 1
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// find returns the storage position of (i,j) and whether it is stored.
// When absent, pos is the insertion point that keeps the row sorted.
func (s *Sparse) find(i, j int) (pos int, ok bool) {
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], j)
	if k < hi && s.colIdx[k] == j {
		return k, true
	}

	return k, false
}

// At returns the value at (i,j); absent cells are 0.
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, sparseErrorf(ctxSparseAt, i, j, ErrOutOfRange)
	}
	if k, ok := s.find(i, j); ok {
		return s.vals[k], nil
	}

	return 0, nil
}

// Set writes v at (i,j). Writing 0 into an absent cell is a no-op.
func (s *Sparse) Set(i, j int, v float64) error {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return sparseErrorf(ctxSparseSet, i, j, ErrOutOfRange)
	}
	if isNonFinite(v) {
		return sparseErrorf(ctxSparseSet, i, j, ErrNaNInf)
	}
	k, ok := s.find(i, j)
	if ok {
		s.vals[k] = v
		return nil
	}
	if v == 0 {
		return nil
	}
	// Insert at k, then shift the row pointers of every following row.
	s.colIdx = append(s.colIdx, 0)
	s.vals = append(s.vals, 0)
	copy(s.colIdx[k+1:], s.colIdx[k:])
	copy(s.vals[k+1:], s.vals[k:])
	s.colIdx[k] = j
	s.vals[k] = v
	for r := i + 1; r <= s.r; r++ {
		s.rowPtr[r]++
	}

	return nil
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix {
	cp := &Sparse{
		r:      s.r,
		c:      s.c,
		rowPtr: make([]int, len(s.rowPtr)),
		colIdx: make([]int, len(s.colIdx)),
		vals:   make([]float64, len(s.vals)),
	}
	copy(cp.rowPtr, s.rowPtr)
	copy(cp.colIdx, s.colIdx)
	copy(cp.vals, s.vals)

	return cp
}

// RowSum returns Σ_j s[i,j], or 0 for an out-of-range row.
func (s *Sparse) RowSum(i int) float64 {
	if i < 0 || i >= s.r {
		return 0
	}
	var acc float64
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		acc += s.vals[k]
	}

	return acc
}

// DoNonZero visits stored entries in row-major order; returning false stops.
func (s *Sparse) DoNonZero(f func(i, j int, v float64) bool) {
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			if !f(i, s.colIdx[k], s.vals[k]) {
				return
			}
		}
	}
}

// ToDense materializes the matrix into a fresh *Dense.
func (s *Sparse) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c), validateNaNInf: DefaultValidateNaNInf}
	s.DoNonZero(func(i, j int, v float64) bool {
		d.data[i*s.c+j] = v
		return true
	})

	return d
}
