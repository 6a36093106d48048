// SPDX-License-Identifier: MIT

package pivot

import "errors"

var (
	// ErrDegenerateNormalization indicates that every node has zero weighted
	// interaction, so normalizing by the maximum is undefined.
	ErrDegenerateNormalization = errors.New("pivot: degenerate normalization (all interactions are zero)")

	// ErrWeightLength indicates len(weights) != T.
	ErrWeightLength = errors.New("pivot: weight vector length does not match the sequence")

	// ErrInvalidThreshold indicates a NaN or infinite threshold.
	ErrInvalidThreshold = errors.New("pivot: threshold must be finite")

	// ErrPivotOutOfRange indicates a pivot index outside [0, N).
	ErrPivotOutOfRange = errors.New("pivot: pivot index out of range")
)
