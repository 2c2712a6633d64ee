package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorHighestOneAlwaysOne(t *testing.T) {
	gen := NewTileGenerator(rand.New(rand.NewSource(7)), DefaultWeightExponent)
	for i := 0; i < 1000; i++ {
		require.Equal(t, 1, gen.Next(1))
	}
	assert.Equal(t, 1, gen.Next(0), "degenerate ceiling still yields 1")
}

func TestGeneratorValuesWithinRange(t *testing.T) {
	gen := NewTileGenerator(rand.New(rand.NewSource(42)), DefaultWeightExponent)
	for i := 0; i < 5000; i++ {
		v := gen.Next(6)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 6)
	}
}

func TestGeneratorProbabilitiesStrictlyDecreasing(t *testing.T) {
	gen := NewTileGenerator(nil, DefaultWeightExponent)
	probs := gen.Probabilities(8)

	require.Len(t, probs, 8)
	sum := 0.0
	for i, p := range probs {
		sum += p
		if i > 0 {
			assert.Less(t, p, probs[i-1], "P(%d) should be below P(%d)", i+1, i)
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestGeneratorEmpiricalOrdering(t *testing.T) {
	gen := NewTileGenerator(rand.New(rand.NewSource(1234)), DefaultWeightExponent)
	counts := make([]int, 5)
	for i := 0; i < 20000; i++ {
		counts[gen.Next(4)]++
	}

	assert.Zero(t, counts[0])
	for v := 2; v <= 4; v++ {
		assert.Greater(t, counts[v-1], counts[v], "value %d should be drawn more often than %d", v-1, v)
	}
}

func TestGeneratorCumulativeWalk(t *testing.T) {
	// Weights for highest=3: 1, 2^-1.8, 3^-1.8
	probs := NewTileGenerator(nil, DefaultWeightExponent).Probabilities(3)

	tests := []struct {
		name   string
		sample float64
		want   int
	}{
		{"zero sample", 0, 1},
		{"just inside first bucket", probs[0] - 1e-6, 1},
		{"second bucket", probs[0] + probs[1]/2, 2},
		{"last bucket", 1 - 1e-9, 3},
		{"drift past total falls back to highest", 1.5, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewTileGenerator(&scriptedSource{vals: []float64{tc.sample}}, DefaultWeightExponent)
			assert.Equal(t, tc.want, gen.Next(3))
		})
	}
}

func TestGeneratorDefaultExponent(t *testing.T) {
	assert.Equal(t, DefaultWeightExponent, NewTileGenerator(nil, 0).Exponent())
	assert.Equal(t, 2.5, NewTileGenerator(nil, 2.5).Exponent())
}
