// Package registry is the closed, compile-time table mapping MDL names to
// their concrete function pair (spec §2.1, §4.6). Each entry is a tagged
// variant — ActivationEntry, LossEntry, ConvergenceEntry, WeightInitEntry,
// BiasInitEntry — carrying its own concrete signature, per the spec §9
// design note rejecting a generic-function-pointer cast in favor of a
// tagged enum dispatched once at lookup.
//
// The parser (package mdl) resolves every name token against this table
// during parsing and fails the whole compile with a diagnostic naming the
// offending token if the lookup misses; graph.Build looks the same names up
// again to attach the functions to runtime nodes.
package registry
