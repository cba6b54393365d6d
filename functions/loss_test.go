package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucAlexander/NeuroMorph/functions"
)

func TestMSE(t *testing.T) {
	result := []float64{1, 2}
	expected := []float64{0, 0}
	loss := functions.MSE(result, expected, 0)
	assert.InDelta(t, (1.0+4.0)/2, loss, 1e-9)
}

func TestMSEDerivativeMatchesFiniteDifference(t *testing.T) {
	expected := []float64{0.5, -0.2, 1.0}
	result := []float64{0.1, 0.3, -0.4}
	got := functions.MSEDerivative(result, expected, 0)
	const h = 1e-5
	for i := range result {
		plus := append([]float64(nil), result...)
		minus := append([]float64(nil), result...)
		plus[i] += h
		minus[i] -= h
		fd := (functions.MSE(plus, expected, 0) - functions.MSE(minus, expected, 0)) / (2 * h)
		assert.InDelta(t, fd, got[i], 1e-3)
	}
}

func TestMAE(t *testing.T) {
	loss := functions.MAE([]float64{1, -1}, []float64{0, 0}, 0)
	assert.InDelta(t, 1.0, loss, 1e-9)
}

func TestHuberQuadraticRegion(t *testing.T) {
	loss := functions.Huber([]float64{0.2}, []float64{0}, 1.0)
	assert.InDelta(t, 0.5*0.2*0.2, loss, 1e-9)
}

func TestHuberLinearRegion(t *testing.T) {
	loss := functions.Huber([]float64{0}, []float64{5}, 1.0)
	assert.InDelta(t, 1.0*5-0.5, loss, 1e-9)
}

func TestCrossEntropyPositive(t *testing.T) {
	loss := functions.CrossEntropy([]float64{0.9, 0.1}, []float64{1, 0}, 0)
	assert.True(t, loss > 0)
}

func TestHinge(t *testing.T) {
	loss := functions.Hinge([]float64{1}, []float64{1}, 0)
	assert.InDelta(t, 0, loss, 1e-9)
	loss = functions.Hinge([]float64{-1}, []float64{1}, 0)
	assert.InDelta(t, 2, loss, 1e-9)
}

func TestHuberDerivativeMatchesFiniteDifference(t *testing.T) {
	expected := []float64{0.5}
	for _, r := range []float64{0.1, 2.0, -2.0} {
		result := []float64{r}
		const h = 1e-5
		plus := []float64{r + h}
		minus := []float64{r - h}
		fd := (functions.Huber(plus, expected, 1.0) - functions.Huber(minus, expected, 1.0)) / (2 * h)
		got := functions.HuberDerivative(result, expected, 1.0)
		assert.InDelta(t, fd, got[0], 1e-2)
	}
}
