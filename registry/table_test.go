package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucAlexander/NeuroMorph/registry"
)

func TestLookupActivationKnown(t *testing.T) {
	e, err := registry.LookupActivation("relu")
	assert.NoError(t, err)
	assert.Equal(t, "relu", e.Name)
	assert.NotNil(t, e.Fn)
	assert.NotNil(t, e.Derivative)
}

func TestLookupActivationUnknown(t *testing.T) {
	_, err := registry.LookupActivation("foobar")
	assert.ErrorIs(t, err, registry.ErrUnknownActivation)
	assert.Contains(t, err.Error(), "foobar")
}

func TestLookupLossKnown(t *testing.T) {
	e, err := registry.LookupLoss("mse")
	assert.NoError(t, err)
	assert.NotNil(t, e.Fn)
}

func TestLookupLossUnknown(t *testing.T) {
	_, err := registry.LookupLoss("nope")
	assert.ErrorIs(t, err, registry.ErrUnknownLoss)
}

func TestLookupConvergenceAllThree(t *testing.T) {
	for _, name := range []string{"multiplicative", "additive", "average"} {
		e, err := registry.LookupConvergence(name)
		assert.NoError(t, err)
		assert.NotNil(t, e.Fn)
		assert.NotNil(t, e.Derivative)
	}
}

func TestLookupWeightAndBiasInit(t *testing.T) {
	for _, name := range []string{"xavier", "he", "lecun", "uniform", "normal", "orthogonal"} {
		_, err := registry.LookupWeightInit(name)
		assert.NoError(t, err, name)
		assert.True(t, registry.IsWeightInit(name))
	}
	for _, name := range []string{"zero", "const_flat", "const_uneven"} {
		_, err := registry.LookupBiasInit(name)
		assert.NoError(t, err, name)
		assert.True(t, registry.IsBiasInit(name))
	}
	assert.False(t, registry.IsWeightInit("zero"))
	assert.False(t, registry.IsBiasInit("xavier"))
}
