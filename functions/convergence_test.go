package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucAlexander/NeuroMorph/functions"
)

// TestConvergenceRoundTrip exercises spec §8 Testable Property 4: each
// operator's forward value and backward split are consistent.
func TestConvergenceRoundTrip(t *testing.T) {
	a, b, gIn := 2.0, 3.0, 1.0

	assert.Equal(t, a+b, functions.Additive(a, b))
	gPrev, gPath := functions.AdditiveDerivative(a, b, gIn)
	assert.Equal(t, gIn, gPrev)
	assert.Equal(t, gIn, gPath)

	assert.Equal(t, a*b, functions.Multiplicative(a, b))
	gPrev, gPath = functions.MultiplicativeDerivative(a, b, gIn)
	assert.Equal(t, a*gIn, gPrev)
	assert.Equal(t, b*gIn, gPath)

	assert.Equal(t, (a+b)/2, functions.Average(a, b))
	gPrev, gPath = functions.AverageDerivative(a, b, gIn)
	assert.Equal(t, 0.5*gIn, gPrev)
	assert.Equal(t, 0.5*gIn, gPath)
}
