package rng

import "math"

// WeightInitFn fills out (row-major, size = inSize*outSize) with initial
// weight values drawn from src, given the fan-in/fan-out of the layer and
// the header's (a, b) parameters (spec §6.1).
type WeightInitFn func(src *Source, out []float64, inSize, outSize int, a, b float64)

// BiasInitFn fills out (size = outSize) with initial bias values.
type BiasInitFn func(src *Source, out []float64, a, b float64)

// Xavier draws each weight from U(-limit, limit) with
// limit = sqrt(1 / (fan_in + fan_out)), matching the original reference.
func Xavier(src *Source, out []float64, inSize, outSize int, _, _ float64) {
	limit := math.Sqrt(1 / float64(inSize+outSize))
	for i := range out {
		out[i] = src.Uniform(-limit, limit)
	}
}

// He draws each weight from U(-limit, limit) with limit = sqrt(6 / fan_in).
func He(src *Source, out []float64, inSize, _ int, _, _ float64) {
	limit := math.Sqrt(6 / float64(inSize))
	for i := range out {
		out[i] = src.Uniform(-limit, limit)
	}
}

// Lecun draws each weight from N(0, std) with std = sqrt(1 / fan_in).
func Lecun(src *Source, out []float64, inSize, _ int, _, _ float64) {
	std := math.Sqrt(1 / float64(inSize))
	for i := range out {
		out[i] = src.Normal(0, std)
	}
}

// Uniform draws each weight from U(a, b).
func Uniform(src *Source, out []float64, _, _ int, a, b float64) {
	for i := range out {
		out[i] = src.Uniform(a, b)
	}
}

// Normal draws each weight from N(a, b).
func Normal(src *Source, out []float64, _, _ int, a, b float64) {
	for i := range out {
		out[i] = src.Normal(a, b)
	}
}

// Orthogonal is documented as an Open Question resolution (SPEC_FULL.md): the
// original reference left it unimplemented (no LAPACK binding available in
// the example pack for true QR orthogonalization), so this falls back to
// per-column normal draws, matching Lecun scaling.
func Orthogonal(src *Source, out []float64, inSize, _ int, _, _ float64) {
	std := math.Sqrt(1 / float64(inSize))
	for i := range out {
		out[i] = src.Normal(0, std)
	}
}

// ZeroBias fills a bias buffer with zero.
func ZeroBias(_ *Source, out []float64, _, _ float64) {
	for i := range out {
		out[i] = 0
	}
}

// ConstFlatBias fills every entry with the constant a.
func ConstFlatBias(_ *Source, out []float64, a, _ float64) {
	for i := range out {
		out[i] = a
	}
}

// ConstUnevenBias draws each entry independently from N(a, b).
func ConstUnevenBias(src *Source, out []float64, a, b float64) {
	for i := range out {
		out[i] = src.Normal(a, b)
	}
}
