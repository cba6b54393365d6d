package ast

import "errors"

// Sentinel errors for AST construction and legality checking (spec §4.1
// "Legality check"). Callers should branch with errors.Is; context (the
// offending node name or id) is attached via fmt.Errorf %w at the call site.
var (
	ErrDuplicateID      = errors.New("ast: duplicate node id")
	ErrNoOutput         = errors.New("ast: no output layer (a node with a loss function and no successor)")
	ErrMultipleOutputs  = errors.New("ast: more than one output layer")
	ErrNextIsRoot       = errors.New("ast: a node's successor points back at the root")
	ErrDanglingTarget   = errors.New("ast: divergence or convergence target does not resolve to any node")
	ErrZeroWidth        = errors.New("ast: layer width must be positive")
	ErrMissingActivation = errors.New("ast: layer is missing an activation function")
	ErrMissingOperator  = errors.New("ast: convergence node is missing its operator")
	ErrMissingPath      = errors.New("ast: convergence node is missing its path")
	ErrRootNotLayer     = errors.New("ast: root node is not a layer")
	ErrNoRoot           = errors.New("ast: no root node set")
)
