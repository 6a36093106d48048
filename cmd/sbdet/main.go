// SPDX-License-Identifier: MIT

// Command sbdet estimates snapshot weights, selects pivot nodes and builds
// correlation graphs from a directory of graph snapshots.
//
//	sbdet simulate --out ./traffic
//	sbdet analyze ./traffic --out ./report
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sbdet:", err)
		os.Exit(1)
	}
}
