// SPDX-License-Identifier: MIT

// Package sbdet detects botnet-like structure in a sequence of weighted graph
// snapshots.
//
// The pipeline is one-way:
//
//	snapshots ─▶ gcm.Estimate ─▶ weights ─▶ pivot.Select ─▶ pivots
//	                                      └▶ pivot.Interaction / pivot.CorrelationGraph
//
//   - gcm estimates per-snapshot weights under a generalized configuration
//     model by maximizing entropy, one convex QP (package qp) per iteration.
//   - pivot turns the weights into pivot nodes (likely leaders or victims),
//     their weighted interaction with every node, and a thresholded
//     correlation graph over the per-snapshot pivot traffic.
//
// Analyze runs the whole pipeline. Supporting packages:
//
//	matrix/    Dense and CSR matrices, kernels, statistics
//	snapshot/  sequence validation and degrees
//	builder/   synthetic background and botnet sequences
//	persist/   matrix, sequence, trace and report files
//	progress/  terminal progress observer
//	metrics/   Prometheus observer
//	config/    YAML configuration for cmd/sbdet
package sbdet
