package ast

import "hash/fnv"

// Kind tags the AST node variant (spec §3 "AST node").
type Kind int

const (
	KindLayer Kind = iota
	KindDivergence
	KindConvergence
)

func (k Kind) String() string {
	switch k {
	case KindLayer:
		return "Layer"
	case KindDivergence:
		return "Divergence"
	case KindConvergence:
		return "Convergence"
	default:
		return "Unknown"
	}
}

// Node is the tagged {Layer, Divergence, Convergence} AST node variant
// (spec §3). Only the fields relevant to Kind are meaningful; the zero
// value of the others is never consulted by the parser or builder.
type Node struct {
	ID   int64
	Name string
	Kind Kind
	Next int64 // successor id in forward order, NoID for the output layer

	// Layer fields.
	Width              int
	Input              bool // true only on the first declared node
	Activation         string
	ActivationParam    float64
	HasActivationParam bool
	Loss               string // "" unless this is the output layer
	LossParam          float64
	HasLossParam       bool

	// Divergence fields: ordered fan-out targets, recorded in source order.
	Branches []int64

	// Convergence fields.
	Path     int64 // id of the other predecessor branch
	Operator string
}

// HasLoss reports whether this Layer node is the output (spec §3 invariant:
// "exactly one node has loss_function != NONE").
func (n *Node) HasLoss() bool {
	return n.Kind == KindLayer && n.Loss != ""
}

// HashName computes the stable node id for name: an FNV-1a hash of the
// node's textual name (spec §3 "FNV/DJB2-like hash"). Collisions within one
// model are a user error; AST.Insert reports one as ErrDuplicateID, the same
// as a reused name.
func HashName(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
