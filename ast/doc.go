// Package ast defines the AST produced by package mdl's parser: a mapping
// from a stable node id (a hash of the node's textual name) to a tagged
// {Layer, Divergence, Convergence} node variant (spec §3 "AST node").
//
// Node ids are computed with FNV-1a over the node's source name, matching
// the spec's "FNV/DJB2-like hash" requirement; collisions within one model
// are a user error (spec §3). AST.Insert rejects any id already present, so
// a hash collision and a reused name both surface as ErrDuplicateID.
package ast

// NoID is the sentinel "no id / not yet set" value (spec §3).
const NoID int64 = -1
