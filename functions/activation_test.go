package functions_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucAlexander/NeuroMorph/functions"
)

func TestSigmoid(t *testing.T) {
	buf := []float64{0, 1, -1}
	functions.Sigmoid(buf, 0)
	assert.InDelta(t, 0.5, buf[0], 1e-9)
	assert.InDelta(t, 1/(1+math.Exp(-1)), buf[1], 1e-9)
	assert.InDelta(t, 1/(1+math.Exp(1)), buf[2], 1e-9)
}

func TestSigmoidDerivative(t *testing.T) {
	post := 0.5
	assert.InDelta(t, 0.25, functions.SigmoidDerivative(0, post, 0), 1e-9)
}

func TestReLU(t *testing.T) {
	buf := []float64{-2, 0, 3}
	functions.ReLU(buf, 0)
	assert.Equal(t, []float64{0, 0, 3}, buf)
	assert.Equal(t, 0.0, functions.ReLUDerivative(-1, 0, 0))
	assert.Equal(t, 1.0, functions.ReLUDerivative(1, 0, 0))
}

func TestReLULeaky(t *testing.T) {
	buf := []float64{-10, 10}
	functions.ReLULeaky(buf, 0)
	assert.InDelta(t, -1.0, buf[0], 1e-9)
	assert.Equal(t, 10.0, buf[1])
	assert.InDelta(t, 0.1, functions.ReLULeakyDerivative(-1, 0, 0), 1e-9)
	assert.Equal(t, 1.0, functions.ReLULeakyDerivative(1, 0, 0))
}

func TestReLUParametric(t *testing.T) {
	buf := []float64{-2}
	functions.ReLUParametric(buf, 0.3)
	assert.InDelta(t, -0.6, buf[0], 1e-9)
	assert.InDelta(t, 0.3, functions.ReLUParametricDerivative(-1, 0, 0.3), 1e-9)
}

func TestTanh(t *testing.T) {
	buf := []float64{0}
	functions.Tanh(buf, 0)
	assert.InDelta(t, 0, buf[0], 1e-9)
	assert.InDelta(t, 1, functions.TanhDerivative(0, 0, 0), 1e-9)
}

func TestSoftmaxSumsToOne(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	functions.Softmax(buf, 0)
	sum := 0.0
	for _, v := range buf {
		assert.True(t, v > 0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestELU(t *testing.T) {
	buf := []float64{-1, 1}
	functions.ELU(buf, 1.0)
	assert.InDelta(t, math.Exp(-1)-1, buf[0], 1e-9)
	assert.Equal(t, 1.0, buf[1])
}

func TestLinearIsIdentity(t *testing.T) {
	buf := []float64{1, -2, 3.5}
	orig := append([]float64(nil), buf...)
	functions.Linear(buf, 0)
	assert.Equal(t, orig, buf)
	assert.Equal(t, 1.0, functions.LinearDerivative(0, 0, 0))
}

func TestBinaryStep(t *testing.T) {
	buf := []float64{-0.1, 0, 0.1}
	functions.BinaryStep(buf, 0)
	assert.Equal(t, []float64{0, 1, 1}, buf)
}

func TestSwishDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-4
	for _, x := range []float64{-2, -0.5, 0, 0.5, 2} {
		plus := []float64{x + h}
		minus := []float64{x - h}
		functions.Swish(plus, 0)
		functions.Swish(minus, 0)
		expected := (plus[0] - minus[0]) / (2 * h)
		buf := []float64{x}
		functions.Swish(buf, 0)
		got := functions.SwishDerivative(x, buf[0], 0)
		assert.InDelta(t, expected, got, 1e-3)
	}
}

func TestSELUDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-4
	for _, x := range []float64{-2, -0.5, 0.5, 2} {
		plus := []float64{x + h}
		minus := []float64{x - h}
		functions.SELU(plus, 0)
		functions.SELU(minus, 0)
		expected := (plus[0] - minus[0]) / (2 * h)
		buf := []float64{x}
		functions.SELU(buf, 0)
		got := functions.SELUDerivative(x, buf[0], 0)
		assert.InDelta(t, expected, got, 1e-3)
	}
}
