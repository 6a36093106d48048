// SPDX-License-Identifier: MIT

// Package builder synthesizes deterministic snapshot sequences for fixtures,
// demos and the CLI simulate command.
//
// A sequence is assembled by BuildSequence from an ordered list of Layers,
// each adding interaction weight to every snapshot it touches:
//
//   - RandomTraffic(p): symmetric Erdős–Rényi background traffic per step,
//     edge weights drawn from the configured WeightFn.
//   - StarBurst(leader, bots, schedule): a leader↔bots star on every step
//     where schedule is on, weighted by WithBurstWeight.
//
// Background and Botnet are the two common compositions. Pulse produces the
// periodic on/off schedule a botnet typically follows.
//
// Options:
//
//   - WithSeed / WithRand: RNG for stochastic layers (required for 0<p<1).
//   - WithWeightFn and the With*Weight shorthands: background edge weights.
//   - WithBurstWeight: per-edge weight of a star burst.
//   - WithSparse: emit *matrix.Sparse snapshots instead of *matrix.Dense.
//
// Guarantees:
//
//   - Same (n, t, options, seed, layer order) ⇒ identical sequences.
//   - Snapshots are non-negative with a zero diagonal and pass
//     snapshot.Sequence.Validate.
//   - Option constructors panic on meaningless values; layers never panic
//     and return sentinel errors instead.
package builder
