package ast

import "fmt"

// AST is the mapping from a stable node id to its AST node variant, plus
// the id of the root (first-declared, input) node (spec §2.2).
type AST struct {
	Nodes map[int64]*Node
	Root  int64
}

// New returns an empty AST with no root set.
func New() *AST {
	return &AST{Nodes: make(map[int64]*Node), Root: NoID}
}

// Insert adds n to the AST, keyed by its id. If this is the first node
// inserted, it becomes the root (spec §4.1: "the first segment parsed must
// be a (…) layer; it is the Input").
func (a *AST) Insert(n *Node) error {
	if _, exists := a.Nodes[n.ID]; exists {
		return fmt.Errorf("ast: node %q (id %d): %w", n.Name, n.ID, ErrDuplicateID)
	}
	a.Nodes[n.ID] = n
	if a.Root == NoID {
		a.Root = n.ID
	}
	return nil
}

// Get looks up a node by id; ok is false if id is NoID or unresolved.
func (a *AST) Get(id int64) (*Node, bool) {
	if id == NoID {
		return nil, false
	}
	n, ok := a.Nodes[id]
	return n, ok
}

// ConvergeBranches scans every Convergence node and rewires
// AST[convergence.Path].Next = convergence.ID (spec §4.1: "the mechanism
// by which a branch 'finds its convergence point' in the AST"). It returns
// an error if any convergence's Path does not resolve to a node in the AST
// (SPEC_FULL.md Open Question resolution #4: checked here, not deferred to
// build).
func (a *AST) ConvergeBranches() error {
	for _, n := range a.Nodes {
		if n.Kind != KindConvergence {
			continue
		}
		src, ok := a.Get(n.Path)
		if !ok {
			return fmt.Errorf("ast: convergence %q: path %d: %w", n.Name, n.Path, ErrDanglingTarget)
		}
		src.Next = n.ID
	}
	return nil
}
