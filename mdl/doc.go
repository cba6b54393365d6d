// Package mdl implements the tokenizer and recursive-descent parser for the
// Model Description Language: a single-line, whitespace-insensitive grammar
// describing a dataflow network as a header (weight/bias initializer
// selection) followed by a sequence of layer, divergence, and convergence
// segments.
//
// Parse consumes the description in one forward pass, building an ast.AST as
// it goes, then runs ast.ConvergeBranches and ast.CheckLegality before
// returning. Any failure — unexpected token, unclosed bracket, unknown
// function name, non-positive width, unrecognized operator, or a legality
// violation — is returned as an error naming the offending token or
// character; no partial AST is returned to the caller on failure.
package mdl
