package graph

import "errors"

// Sentinel errors for graph construction (spec §4.2, §9 Open Question on
// divergence fan-out width checking).
var (
	ErrWidthMismatch  = errors.New("graph: divergence fan-out consumer width does not match predecessor width")
	ErrUnresolvedNode = errors.New("graph: ast node id does not resolve (legality check should have caught this)")
	ErrNoOutput       = errors.New("graph: built adjacency contains no Output node")
	ErrUnknownKind    = errors.New("graph: ast node has an unrecognized kind")
)
