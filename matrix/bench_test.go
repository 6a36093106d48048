// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sbdet/matrix"
)

func randomRows(n, c int, density float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			if rng.Float64() < density {
				rows[i][j] = rng.Float64()
			}
		}
	}

	return rows
}

func BenchmarkRowSums_Dense256(b *testing.B) {
	m := MustDense(b, randomRows(256, 256, 1, 1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = matrix.RowSums(m)
	}
}

func BenchmarkRowSums_Sparse1024(b *testing.B) {
	m := MustSparse(b, randomRows(1024, 1024, 0.01, 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = matrix.RowSums(m)
	}
}

func BenchmarkCorrelation_64x128(b *testing.B) {
	m := MustDense(b, randomRows(64, 128, 1, 3))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, _ = matrix.Correlation(m)
	}
}
