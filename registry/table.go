package registry

import (
	"fmt"

	"github.com/LucAlexander/NeuroMorph/functions"
	"github.com/LucAlexander/NeuroMorph/rng"
)

// ActivationEntry pairs an activation with its derivative.
type ActivationEntry struct {
	Name       string
	Fn         functions.ActivationFn
	Derivative functions.ActivationDerivativeFn
}

// LossEntry pairs a loss with its derivative.
type LossEntry struct {
	Name       string
	Fn         functions.LossFn
	Derivative functions.LossDerivativeFn
}

// ConvergenceEntry pairs a convergence operator with its derivative split.
type ConvergenceEntry struct {
	Name       string
	Fn         functions.ConvergenceFn
	Derivative functions.ConvergenceDerivativeFn
}

// WeightInitEntry names a weight initializer and its parameter arity.
type WeightInitEntry struct {
	Name  string
	Fn    rng.WeightInitFn
	Arity int // number of numeric parameters the header may supply
}

// BiasInitEntry names a bias initializer and its parameter arity.
type BiasInitEntry struct {
	Name  string
	Fn    rng.BiasInitFn
	Arity int
}

var activations = map[string]ActivationEntry{
	"sigmoid":          {"sigmoid", functions.Sigmoid, functions.SigmoidDerivative},
	"relu":             {"relu", functions.ReLU, functions.ReLUDerivative},
	"relu_leaky":       {"relu_leaky", functions.ReLULeaky, functions.ReLULeakyDerivative},
	"relu_parametric":  {"relu_parametric", functions.ReLUParametric, functions.ReLUParametricDerivative},
	"tanh":             {"tanh", functions.Tanh, functions.TanhDerivative},
	"softmax":          {"softmax", functions.Softmax, functions.SoftmaxDerivative},
	"elu":              {"elu", functions.ELU, functions.ELUDerivative},
	"gelu":             {"gelu", functions.GELU, functions.GELUDerivative},
	"swish":            {"swish", functions.Swish, functions.SwishDerivative},
	"selu":             {"selu", functions.SELU, functions.SELUDerivative},
	"linear":           {"linear", functions.Linear, functions.LinearDerivative},
	"binary_step":      {"binary_step", functions.BinaryStep, functions.BinaryStepDerivative},
}

var losses = map[string]LossEntry{
	"mse":             {"mse", functions.MSE, functions.MSEDerivative},
	"mae":             {"mae", functions.MAE, functions.MAEDerivative},
	"mape":            {"mape", functions.MAPE, functions.MAPEDerivative},
	"huber":           {"huber", functions.Huber, functions.HuberDerivative},
	"huber_modified":  {"huber_modified", functions.HuberModified, functions.HuberModifiedDerivative},
	"hinge":           {"hinge", functions.Hinge, functions.HingeDerivative},
	"cross_entropy":   {"cross_entropy", functions.CrossEntropy, functions.CrossEntropyDerivative},
}

var convergences = map[string]ConvergenceEntry{
	"multiplicative": {"multiplicative", functions.Multiplicative, functions.MultiplicativeDerivative},
	"additive":       {"additive", functions.Additive, functions.AdditiveDerivative},
	"average":        {"average", functions.Average, functions.AverageDerivative},
}

var weightInits = map[string]WeightInitEntry{
	"xavier":     {"xavier", rng.Xavier, 0},
	"he":         {"he", rng.He, 0},
	"lecun":      {"lecun", rng.Lecun, 0},
	"uniform":    {"uniform", rng.Uniform, 2},
	"normal":     {"normal", rng.Normal, 2},
	"orthogonal": {"orthogonal", rng.Orthogonal, 0},
}

var biasInits = map[string]BiasInitEntry{
	"zero":          {"zero", rng.ZeroBias, 0},
	"const_flat":    {"const_flat", rng.ConstFlatBias, 1},
	"const_uneven":  {"const_uneven", rng.ConstUnevenBias, 2},
}

// LookupActivation resolves name against the activation table.
func LookupActivation(name string) (ActivationEntry, error) {
	e, ok := activations[name]
	if !ok {
		return ActivationEntry{}, fmt.Errorf("registry: activation %q: %w", name, ErrUnknownActivation)
	}
	return e, nil
}

// LookupLoss resolves name against the loss table.
func LookupLoss(name string) (LossEntry, error) {
	e, ok := losses[name]
	if !ok {
		return LossEntry{}, fmt.Errorf("registry: loss %q: %w", name, ErrUnknownLoss)
	}
	return e, nil
}

// LookupConvergence resolves name against the convergence-operator table.
func LookupConvergence(name string) (ConvergenceEntry, error) {
	e, ok := convergences[name]
	if !ok {
		return ConvergenceEntry{}, fmt.Errorf("registry: convergence %q: %w", name, ErrUnknownConvergence)
	}
	return e, nil
}

// LookupWeightInit resolves name against the weight-initializer table.
func LookupWeightInit(name string) (WeightInitEntry, error) {
	e, ok := weightInits[name]
	if !ok {
		return WeightInitEntry{}, fmt.Errorf("registry: weight initializer %q: %w", name, ErrUnknownWeightInit)
	}
	return e, nil
}

// LookupBiasInit resolves name against the bias-initializer table.
func LookupBiasInit(name string) (BiasInitEntry, error) {
	e, ok := biasInits[name]
	if !ok {
		return BiasInitEntry{}, fmt.Errorf("registry: bias initializer %q: %w", name, ErrUnknownBiasInit)
	}
	return e, nil
}

// IsWeightInit reports whether name names a weight initializer, used by the
// header parser to disambiguate a bare init-call (spec §4.1 grammar: a
// header init-call may be either a weight or bias initializer).
func IsWeightInit(name string) bool {
	_, ok := weightInits[name]
	return ok
}

// IsBiasInit reports whether name names a bias initializer.
func IsBiasInit(name string) bool {
	_, ok := biasInits[name]
	return ok
}
