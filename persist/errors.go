// SPDX-License-Identifier: MIT

package persist

import "errors"

var (
	// ErrUnknownFormat indicates a file extension or manifest format that no
	// codec handles.
	ErrUnknownFormat = errors.New("persist: unknown format")

	// ErrManifest indicates a missing, unreadable or inconsistent manifest.
	ErrManifest = errors.New("persist: invalid manifest")

	// ErrMalformed indicates a CSV body that is empty, ragged or not numeric.
	ErrMalformed = errors.New("persist: malformed data")
)
