// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// impl_burst.go - StarBurst(leader, bots, schedule) layer.
//
// Canonical model:
//   - On every step s with schedule[s] == true, the leader exchanges
//     cfg.burstWeight with each bot in both directions.
//   - A bot equal to the leader is skipped (no self-loops); a bot listed twice
//     receives the burst twice.
//
// Contract:
//   - len(schedule) == t (else ErrBadSize).
//   - leader and bots in [0,n) (else ErrNodeOutOfRange).

package builder

import (
	"fmt"

	"github.com/katalvlaran/sbdet/matrix"
)

const methodStarBurst = "StarBurst"

// StarBurst returns a Layer overlaying a leader↔bots star on the steps where
// schedule is on. The layer is deterministic and consumes no randomness.
// Complexity: O(t·len(bots)).
func StarBurst(leader int, bots []int, schedule []bool) Layer {
	return func(steps []*matrix.Dense, cfg builderConfig) error {
		if len(schedule) != len(steps) {
			return fmt.Errorf("%s: schedule length %d, want %d: %w",
				methodStarBurst, len(schedule), len(steps), ErrBadSize)
		}
		n := steps[0].Rows()
		if leader < 0 || leader >= n {
			return fmt.Errorf("%s: leader %d not in [0,%d): %w", methodStarBurst, leader, n, ErrNodeOutOfRange)
		}
		for _, b := range bots {
			if b < 0 || b >= n {
				return fmt.Errorf("%s: bot %d not in [0,%d): %w", methodStarBurst, b, n, ErrNodeOutOfRange)
			}
		}

		for s, on := range schedule {
			if !on {
				continue
			}
			for _, b := range bots {
				if b == leader {
					continue
				}
				addSymmetric(steps[s], leader, b, cfg.burstWeight)
			}
		}

		return nil
	}
}
