// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// impl_pulse.go - deterministic rectangular on/off schedule.
//
// Shape:
//   - Step s is on when frac(s) < duty, with frac(s) = ((s+phase) mod period)/period.
//   - duty = 0 is never on; duty = 1 is always on.

package builder

import "fmt"

const methodPulse = "Pulse"

// Pulse returns a length-t rectangular schedule with the given period (in
// steps) and duty cycle, starting at phase 0.
// Errors: ErrBadSize (t<1, period<1, duty∉[0,1]).
// Complexity: O(t).
func Pulse(t, period int, duty float64) ([]bool, error) {
	return PulseAt(t, period, 0, duty)
}

// PulseAt is Pulse with a phase offset in steps; negative phases wrap.
func PulseAt(t, period, phase int, duty float64) ([]bool, error) {
	if t < 1 || period < 1 {
		return nil, fmt.Errorf("%s: t=%d period=%d: %w", methodPulse, t, period, ErrBadSize)
	}
	if !(duty >= 0 && duty <= 1) {
		return nil, fmt.Errorf("%s: duty=%g not in [0,1]: %w", methodPulse, duty, ErrBadSize)
	}

	out := make([]bool, t)
	for s := range out {
		k := ((s+phase)%period + period) % period
		out[s] = float64(k)/float64(period) < duty
	}

	return out, nil
}
