// SPDX-License-Identifier: MIT

// Package snapshot models a sequence of interaction-graph snapshots.
//
// A Sequence is T square, non-negative N×N matrices (dense or sparse), one per
// time step. Validate enforces the shape contract; every failure matches
// ErrConfiguration. ComputeDegrees derives the per-step out/in degrees and the
// total degree mass consumed by the GCM coefficient tensor.
package snapshot
