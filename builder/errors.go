// SPDX-License-Identifier: MIT
// Package: sbdet/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Layers attach context with %w, e.g. "RandomTraffic: p=1.5: <sentinel>".
//   - Validation panics are confined to option constructors (WithX...).
//
// Priority when several checks fail:
//   ErrTooFewVertices / ErrBadSize → ErrInvalidProbability → ErrNodeOutOfRange
//   → ErrNeedRandSource → ErrInvalidWeight.

package builder

import "errors"

// ErrTooFewVertices indicates n below the minimum a sequence needs.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1] (or NaN).
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic layer ran without an RNG;
// supply WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrBadSize indicates an invalid length: t < 1, a schedule whose length is
// not t, a pulse period < 1 or a duty cycle outside [0,1].
var ErrBadSize = errors.New("builder: invalid size/length")

// ErrNodeOutOfRange indicates a leader or bot index outside [0,n).
var ErrNodeOutOfRange = errors.New("builder: node index out of range")

// ErrInvalidWeight indicates that a WeightFn produced a negative or
// non-finite value.
var ErrInvalidWeight = errors.New("builder: invalid edge weight")

// ErrConstructFailed indicates a structural failure such as a nil layer.
var ErrConstructFailed = errors.New("builder: construction failed")
