// SPDX-License-Identifier: MIT

package pivot_test

import (
	"fmt"

	"github.com/katalvlaran/sbdet/pivot"
	"github.com/katalvlaran/sbdet/snapshot"
)

func ExampleSelect() {
	seq, _ := snapshot.FromRows([][][]float64{
		{{0, 3}, {1, 0}},
		{{0, 2}, {1, 0}},
	})
	pivots, _ := pivot.Select(seq, []float64{0.5, 0.5}, 0.5)
	fmt.Println(pivots)
	// Output: [0]
}
