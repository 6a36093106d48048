// SPDX-License-Identifier: MIT
// Package builder_test contains unit tests for the WeightFn implementations,
// covering both correct behavior and panic conditions.
package builder_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sbdet/builder"
	"github.com/stretchr/testify/require"
)

func TestWeightFnConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor func() builder.WeightFn
	}{
		{"ConstantWeightFn_negative", func() builder.WeightFn { return builder.ConstantWeightFn(-1) }},
		{"UniformWeightFn_minNegative", func() builder.WeightFn { return builder.UniformWeightFn(-1, 5) }},
		{"UniformWeightFn_maxLessThanMin", func() builder.WeightFn { return builder.UniformWeightFn(5, 4) }},
		{"NormalWeightFn_stddevNegative", func() builder.WeightFn { return builder.NormalWeightFn(0, -0.1) }},
		{"ExponentialWeightFn_zeroRate", func() builder.WeightFn { return builder.ExponentialWeightFn(0) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Panics(t, func() { tc.constructor() })
		})
	}
}

func TestWeightFnValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, builder.DefaultEdgeWeight, builder.DefaultWeightFn(nil))
	require.Equal(t, 2.5, builder.ConstantWeightFn(2.5)(nil))

	// nil RNG falls back to the default weight.
	require.Equal(t, builder.DefaultEdgeWeight, builder.UniformWeightFn(3, 4)(nil))
	require.Equal(t, builder.DefaultEdgeWeight, builder.NormalWeightFn(3, 1)(nil))
	require.Equal(t, builder.DefaultEdgeWeight, builder.ExponentialWeightFn(2)(nil))

	rng := rand.New(rand.NewSource(11))
	require.Equal(t, 3.0, builder.UniformWeightFn(3, 3)(rng))
	for i := 0; i < 100; i++ {
		u := builder.UniformWeightFn(2, 5)(rng)
		require.GreaterOrEqual(t, u, 2.0)
		require.Less(t, u, 5.0)
		require.GreaterOrEqual(t, builder.NormalWeightFn(0, 1)(rng), 0.0)
		require.GreaterOrEqual(t, builder.ExponentialWeightFn(1)(rng), 0.0)
	}
}
