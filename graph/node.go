package graph

import (
	"sync"

	"github.com/LucAlexander/NeuroMorph/functions"
)

// Kind tags the runtime node variant (spec §3 "Runtime node").
type Kind int

const (
	KindInput Kind = iota
	KindLayer
	KindOutput
	KindDivergent
	KindConvergent
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindLayer:
		return "Layer"
	case KindOutput:
		return "Output"
	case KindDivergent:
		return "Divergent"
	case KindConvergent:
		return "Convergent"
	default:
		return "Unknown"
	}
}

// Node is the union-of-roles runtime graph vertex (spec §3 "Runtime node").
// Only the fields relevant to Kind are meaningful. Buffers that alias an
// upstream node's storage (PreviousNeuronBuffer, a Divergent's NeuronBuffer,
// a Convergent's ConvergentBuffer) are Go slices sharing the same backing
// array as the owner — this is how the spec's "shared pointer aliasing"
// Design Note (§9) is realized without a separate BufferId indirection: a
// Go slice header already carries the alias.
type Node struct {
	ID   int64
	Name string
	Kind Kind

	Width     int // this node's own width (a Divergent takes its predecessor's)
	PrevWidth int // width of whatever feeds this node

	NeuronBuffer    []float64 // activated output; aliased by Divergent children
	NeuronBufferRaw []float64 // pre-activation, backlog source

	WeightBuffer   *DenseBuffer // width × prevWidth, nil for Input/Divergent/Convergent
	BiasBuffer     []float64
	WeightGradient *DenseBuffer
	GradientBuffer []float64 // pre-activation gradient, same size as NeuronBuffer

	Activation           functions.ActivationFn
	ActivationDerivative functions.ActivationDerivativeFn
	ActivationParam      float64

	Loss           functions.LossFn
	LossDerivative functions.LossDerivativeFn
	LossParam      float64
	Expected       []float64 // Output only: current sample's target vector

	ConvergenceOp         functions.ConvergenceFn
	ConvergenceDerivative functions.ConvergenceDerivativeFn
	Operator              string

	Prev                 *Node // the node this one's buffers were wired from
	PreviousNeuronBuffer []float64

	Next               *Node   // primary successor (Layer/Output/Divergent/Convergent's forward link)
	AdditionalBranches []*Node // Divergent only: the non-primary fan-out targets

	ConvergentNode   *Node     // Convergent only: the secondary predecessor
	ConvergentBuffer []float64 // alias into ConvergentNode.NeuronBuffer
	PathGradientBuffer []float64 // Convergent only: gradient toward the secondary predecessor

	Mu        sync.Mutex
	Cond      *sync.Cond
	Ready     bool
	BackReady bool

	Loop          bool // this node's forward edge closes a cycle
	LoopStart     bool // this node is the target of a back-edge
	Unrolled      bool
	UnrolledFront bool
	GradSnapshot  []float64 // loop_start's saved gradient, read instead of awaited on closure

	BacklogOffset           int
	BacklogOffsetActivation int
	OperandBacklogOffset    int // Convergent only: [prevValue | pathValue] per sample, each Width wide
}

func newNode(id int64, name string, kind Kind) *Node {
	n := &Node{ID: id, Name: name, Kind: kind}
	n.Cond = sync.NewCond(&n.Mu)
	return n
}

// EndOfBranch reports whether this node is on the secondary branch feeding
// a Convergent successor — spec §4.4: "node.next.type == Convergent ∧
// node.next.prev != node". A forward thread on this node signals ready and
// exits rather than recursing further.
func (n *Node) EndOfBranch() bool {
	return n.Next != nil && n.Next.Kind == KindConvergent && n.Next.Prev != n
}
