// Package rng provides the process-wide pseudo-random source used by weight
// and bias initializers (spec §5 "Randomness", §6.1), plus the initializer
// functions themselves.
//
// Per the spec §9 design note on globals, randomness is threaded through an
// explicit *Source handle; Seed mutates a package-level default handle as a
// convenience for callers that do not want to manage one themselves.
package rng
