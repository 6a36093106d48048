// SPDX-License-Identifier: MIT

// Package progress renders estimator progress as a single terminal line.
//
// Bar implements gcm.Observer. Each solve rewrites the line in place:
//
//	iteration 3/11 [######..........] err=1.2e-03 obj=-4.1532
//
// and OnFinish clears it. A disabled Bar writes nothing, so callers can wire
// it unconditionally and let Auto decide from the output stream.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/katalvlaran/sbdet/gcm"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	barCells     = 16
)

// Bar is a gcm.Observer drawing a \r-rewritten progress line.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	width   int
	max     int
	last    int
}

var _ gcm.Observer = (*Bar)(nil)

// New returns a Bar writing to w. A disabled Bar is a no-op.
func New(w io.Writer, enabled bool) *Bar {
	return &Bar{w: w, enabled: enabled && w != nil, width: defaultWidth}
}

// Auto returns a Bar on f that is enabled only when f is a terminal, sized
// to the terminal width.
func Auto(f *os.File) *Bar {
	fd := int(f.Fd())
	b := New(f, term.IsTerminal(fd))
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		b.width = w
	}

	return b
}

// Enabled reports whether the bar draws anything.
func (b *Bar) Enabled() bool { return b.enabled }

// OnStart implements gcm.Observer.
func (b *Bar) OnStart(_, _, maxIter int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.max = maxIter
	b.last = 0
}

// OnIteration implements gcm.Observer.
func (b *Bar) OnIteration(it int, err, objective float64) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	done := it + 1
	filled := 0
	if b.max > 0 {
		filled = min(barCells, done*barCells/b.max)
	}
	line := fmt.Sprintf("iteration %d/%d [%s%s] err=%.1e obj=%.4f",
		done, b.max, strings.Repeat("#", filled), strings.Repeat(".", barCells-filled), err, objective)
	if len(line) > b.width-1 {
		line = line[:b.width-1]
	}
	pad := ""
	if b.last > len(line) {
		pad = strings.Repeat(" ", b.last-len(line))
	}
	fmt.Fprintf(b.w, "\r%s%s", line, pad)
	b.last = len(line)
}

// OnFinish implements gcm.Observer; it erases the line.
func (b *Bar) OnFinish(*gcm.Trace) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last > 0 {
		fmt.Fprintf(b.w, "\r%s\r", strings.Repeat(" ", b.last))
	}
	b.last = 0
}
