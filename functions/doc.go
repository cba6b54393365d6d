// Package functions implements the closed set of activation, loss, and
// convergence primitives a compiled NeuroMorph model may reference by name
// (spec §6.2). Each activation and loss carries a hand-written derivative;
// the set is intentionally closed — there is no mechanism for a caller to
// register a new primitive, since the front end resolves names against the
// registry package's fixed tables at parse time.
//
// Formulas and constants (leaky-ReLU slope, GELU's tanh-approximation
// constant, Huber's quadratic/linear switch, ...) are pinned to the scalar
// reference path of the original NeuroMorph C implementation, stripped of
// its SIMD intrinsics.
package functions
