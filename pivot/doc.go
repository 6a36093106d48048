// SPDX-License-Identifier: MIT

// Package pivot turns estimated snapshot weights into detection artefacts.
//
//   - Select: nodes whose weighted total interaction, normalized by the
//     maximum over nodes, strictly exceeds a threshold (leader/victim
//     candidates).
//   - Interaction: every node's weighted interaction with the pivot set.
//   - Traffic / CorrelationGraph: per-snapshot pivot interaction stacked into
//     a T×N series, Pearson-correlated across nodes and thresholded.
//
// All functions are pure; inputs are never mutated. Snapshots are read
// through the matrix.Matrix interface, so dense and sparse snapshots mix.
package pivot
