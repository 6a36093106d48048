// SPDX-License-Identifier: MIT

// Package matrix provides the numeric substrate for interaction-graph snapshots.
//
// The matrix package offers:
//
//   - The Matrix interface with two storage layouts: row-major *Dense and
//     compressed-sparse-row *Sparse, for small dense snapshots and large
//     mostly-empty ones respectively.
//   - Kernels shared by the estimator and pivot layers: MatVec, VecMat,
//     Transpose, Mul, ScaleCols and the reductions RowSums, ColSums,
//     SumRowsOf and Total.
//   - Column statistics: Pearson Correlation, where a zero-variance column
//     yields zeros rather than NaN.
//   - The scrub rule as named, separately testable steps: ReplaceInfNaN for
//     matrices, ScrubInf and ScrubNonFinite for vectors.
//
// Errors are package sentinels (ErrOutOfRange, ErrDimensionMismatch, ...)
// wrapped with an operation tag; match them with errors.Is.
//
// Indexers never panic. NewDenseWithOptions takes the numeric policy
// (WithValidateNaNInf, WithNoValidateNaNInf).
package matrix
