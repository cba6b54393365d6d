package functions

// ConvergenceFn combines one element from the primary predecessor's buffer
// (prev) with the corresponding element from the secondary ("path")
// predecessor's buffer into a single output value (spec §4.2, §6.2).
type ConvergenceFn func(pathValue, prevValue float64) float64

// ConvergenceDerivativeFn splits the incoming downstream gradient gIn into
// the gradient that flows toward the primary predecessor (gPrev) and the
// gradient toward the secondary/path predecessor (gPath), given the forward
// values that produced the merge (spec §4.5).
type ConvergenceDerivativeFn func(pathValue, prevValue, gIn float64) (gPrev, gPath float64)

func Multiplicative(pathValue, prevValue float64) float64 {
	return pathValue * prevValue
}

func MultiplicativeDerivative(pathValue, prevValue, gIn float64) (gPrev, gPath float64) {
	return pathValue * gIn, prevValue * gIn
}

func Additive(pathValue, prevValue float64) float64 {
	return pathValue + prevValue
}

func AdditiveDerivative(_, _, gIn float64) (gPrev, gPath float64) {
	return gIn, gIn
}

func Average(pathValue, prevValue float64) float64 {
	return (pathValue + prevValue) / 2
}

func AverageDerivative(_, _, gIn float64) (gPrev, gPath float64) {
	half := 0.5 * gIn
	return half, half
}
