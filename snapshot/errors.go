// SPDX-License-Identifier: MIT

package snapshot

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the category of every input-shape error in this package.
// Callers that only need to know "the input was unusable" match it with errors.Is.
var ErrConfiguration = errors.New("snapshot: configuration error")

var (
	// ErrEmptySequence indicates that no snapshot was supplied.
	ErrEmptySequence = fmt.Errorf("%w: empty sequence", ErrConfiguration)

	// ErrNilSnapshot indicates a nil matrix inside the sequence.
	ErrNilSnapshot = fmt.Errorf("%w: nil snapshot", ErrConfiguration)

	// ErrNonSquare indicates a snapshot that is not N×N.
	ErrNonSquare = fmt.Errorf("%w: snapshot is not square", ErrConfiguration)

	// ErrSizeMismatch indicates snapshots with different N.
	ErrSizeMismatch = fmt.Errorf("%w: snapshots differ in size", ErrConfiguration)

	// ErrNegativeWeight indicates a negative interaction weight.
	ErrNegativeWeight = fmt.Errorf("%w: negative interaction weight", ErrConfiguration)
)
