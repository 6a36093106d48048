// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface.
// Both storage layouts in this package (*Dense, *Sparse) implement it, and every
// kernel accepts it, with flat-buffer fast paths for the concrete types.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// A graph snapshot is a square Matrix whose (i,j) entry is the interaction
// weight from node i to node j.
//
// Complexity notes: Rows/Cols are O(1); At/Set are O(1) for *Dense and
// O(log nnz(row)) for *Sparse; Clone is O(size of storage).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid and ErrNaNInf when the
	// numeric policy of the receiver rejects v.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}
