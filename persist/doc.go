// SPDX-License-Identifier: MIT

// Package persist loads and dumps the arrays the pipeline produces.
//
//   - Matrices: gonum's binary format (SaveMatrix/LoadMatrix) or CSV
//     (WriteCSV/ReadCSV), one row per line.
//   - Sequences: a directory holding manifest.yaml plus one file per
//     snapshot, snapshot-0000.csv or snapshot-0000.bin. LoadSequence reads the
//     snapshot files concurrently.
//   - Traces and correlation graphs: YAML or JSON chosen by file extension.
package persist
