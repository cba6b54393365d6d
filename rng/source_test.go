package rng_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucAlexander/NeuroMorph/rng"
)

func TestSourceDeterministicGivenSeed(t *testing.T) {
	a := rng.NewSource(42)
	b := rng.NewSource(42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestSourceDifferentSeedsDiverge(t *testing.T) {
	a := rng.NewSource(1)
	b := rng.NewSource(2)
	assert.NotEqual(t, a.Uniform(0, 1), b.Uniform(0, 1))
}

func TestUniformBounds(t *testing.T) {
	src := rng.NewSource(7)
	for i := 0; i < 1000; i++ {
		v := src.Uniform(-2, 3)
		assert.True(t, v >= -2 && v < 3)
	}
}

func TestXavierFillsExpectedSize(t *testing.T) {
	src := rng.NewSource(1)
	out := make([]float64, 6)
	rng.Xavier(src, out, 2, 3, 0, 0)
	limit := math.Sqrt(1 / float64(2+3))
	for _, v := range out {
		assert.False(t, math.IsNaN(v))
		assert.True(t, v >= -limit && v < limit)
	}
}

func TestZeroBias(t *testing.T) {
	out := make([]float64, 4)
	for i := range out {
		out[i] = 99
	}
	rng.ZeroBias(nil, out, 0, 0)
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestConstFlatBias(t *testing.T) {
	out := make([]float64, 3)
	rng.ConstFlatBias(nil, out, 5, 0)
	assert.Equal(t, []float64{5, 5, 5}, out)
}

func TestSeedAffectsDefault(t *testing.T) {
	rng.Seed(123)
	v1 := rng.Default().Uniform(0, 1)
	rng.Seed(123)
	v2 := rng.Default().Uniform(0, 1)
	assert.Equal(t, v1, v2)
}
