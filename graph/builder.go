package graph

import (
	"fmt"

	"github.com/LucAlexander/NeuroMorph/ast"
	"github.com/LucAlexander/NeuroMorph/registry"
)

// Graph is the fully wired runtime adjacency plus the per-batch buffers
// allocated alongside it (spec §3 "Lifecycle": "the batch backlog and
// batch-expected arrays are allocated once in build").
type Graph struct {
	Root   *Node // Input
	Output *Node
	Nodes  []*Node // every runtime node in build order

	BatchSize int
	Backlog   *Backlog
	Expected  *BatchExpected
}

// Build walks tree starting at its root, creating and linking runtime
// nodes in graph order (spec §4.2). tree must already have passed
// ast.ConvergeBranches and ast.CheckLegality.
func Build(tree *ast.AST, batchSize int) (*Graph, error) {
	b := &builder{tree: tree, domain: make(map[int64]*Node)}

	rootAST, ok := tree.Get(tree.Root)
	if !ok {
		return nil, fmt.Errorf("graph: %w", ErrUnresolvedNode)
	}
	root, err := b.visit(rootAST)
	if err != nil {
		return nil, err
	}

	var output *Node
	for _, n := range b.order {
		if n.Kind == KindOutput {
			output = n
			break
		}
	}
	if output == nil {
		return nil, ErrNoOutput
	}

	g := &Graph{
		Root:      root,
		Output:    output,
		Nodes:     b.order,
		BatchSize: batchSize,
		Backlog:   NewBacklog(b.backlogWidth, batchSize),
		Expected:  NewBatchExpected(output.Width, batchSize),
	}
	return g, nil
}

type builder struct {
	tree         *ast.AST
	domain       map[int64]*Node
	order        []*Node
	backlogWidth int
	synthetic    int64
}

// getOrCreate returns the runtime node for an AST id, creating a bare
// (unlinked) node on first visit. existed reports whether the node was
// already present — callers use this to distinguish a fresh link from a
// convergence's second predecessor or a genuine recurrent back-edge.
func (b *builder) getOrCreate(an *ast.Node) (*Node, bool) {
	if n, ok := b.domain[an.ID]; ok {
		return n, true
	}
	var kind Kind
	switch an.Kind {
	case ast.KindLayer:
		switch {
		case an.Input:
			kind = KindInput
		case an.HasLoss():
			kind = KindOutput
		default:
			kind = KindLayer
		}
	case ast.KindDivergence:
		kind = KindDivergent
	case ast.KindConvergence:
		kind = KindConvergent
	}
	n := newNode(an.ID, an.Name, kind)
	n.Width = an.Width
	if kind == KindConvergent {
		entry, _ := registry.LookupConvergence(an.Operator)
		n.Operator = an.Operator
		n.ConvergenceOp = entry.Fn
		n.ConvergenceDerivative = entry.Derivative
	}
	if kind == KindInput || kind == KindLayer || kind == KindOutput {
		entry, _ := registry.LookupActivation(an.Activation)
		n.Activation = entry.Fn
		n.ActivationDerivative = entry.Derivative
		n.ActivationParam = an.ActivationParam
		n.NeuronBuffer = make([]float64, n.Width)
		n.NeuronBufferRaw = make([]float64, n.Width)
	}
	if kind == KindOutput {
		lossEntry, _ := registry.LookupLoss(an.Loss)
		n.Loss = lossEntry.Fn
		n.LossDerivative = lossEntry.Derivative
		n.LossParam = an.LossParam
		n.Expected = make([]float64, n.Width)
	}
	b.domain[an.ID] = n
	b.order = append(b.order, n)
	// Input/Layer/Output have a known width from the AST and can register
	// their backlog slice immediately. A Convergent's width is only known
	// once its first incoming link is wired, so link registers it there;
	// Divergent nodes store nothing per-sample and never register.
	if kind == KindInput || kind == KindLayer || kind == KindOutput {
		b.registerBacklog(n)
	}
	return n, false
}

func (b *builder) registerBacklog(n *Node) {
	switch n.Kind {
	case KindInput:
		n.BacklogOffset = b.backlogWidth
		b.backlogWidth += n.Width
	case KindConvergent:
		n.BacklogOffset = b.backlogWidth
		b.backlogWidth += n.Width
		// also records each sample's two operand values (prevValue, pathValue)
		// so the backward pass can re-derive a per-sample split instead of
		// only seeing the last sample forward-run in the batch.
		n.OperandBacklogOffset = b.backlogWidth
		b.backlogWidth += 2 * n.Width
	case KindLayer, KindOutput:
		n.BacklogOffset = b.backlogWidth
		n.BacklogOffsetActivation = n.Width
		b.backlogWidth += 2 * n.Width
	case KindDivergent:
		// stores nothing per-sample
	}
}

// visit builds (or fetches) the runtime node for an AST node with no
// predecessor — used only for the root. All other nodes are reached via
// link, which both wires buffers and recurses into the new node's own
// successors.
func (b *builder) visit(an *ast.Node) (*Node, error) {
	n, existed := b.getOrCreate(an)
	if existed {
		return n, nil
	}
	if err := b.descend(an, n); err != nil {
		return nil, err
	}
	return n, nil
}

// descend builds node's own successors in the AST, recursing through
// source (= node) as the new predecessor for each.
func (b *builder) descend(an *ast.Node, node *Node) error {
	switch an.Kind {
	case ast.KindLayer:
		if an.Next == ast.NoID {
			return nil // Output: no successor
		}
		return b.followChain(node, an.Next)
	case ast.KindDivergence:
		for i, branchID := range an.Branches {
			branchAST, ok := b.tree.Get(branchID)
			if !ok {
				return fmt.Errorf("graph: divergence %q branch: %w", an.Name, ErrUnresolvedNode)
			}
			branch, existed := b.getOrCreate(branchAST)
			if err := b.link(node, branch, !existed); err != nil {
				return fmt.Errorf("graph: divergence %q: %w", an.Name, err)
			}
			if !existed && (branch.Kind == KindLayer || branch.Kind == KindOutput) && branch.Width != branch.PrevWidth {
				return fmt.Errorf("graph: divergence %q: layer %q width %d != fan-out predecessor width %d: %w",
					an.Name, branch.Name, branch.Width, branch.PrevWidth, ErrWidthMismatch)
			}
			if i == 0 {
				node.Next = branch
			} else {
				node.AdditionalBranches = append(node.AdditionalBranches, branch)
			}
			if !existed {
				if err := b.descend(branchAST, branch); err != nil {
					return err
				}
			}
		}
		return nil
	case ast.KindConvergence:
		if an.Next == ast.NoID {
			return nil
		}
		return b.followChain(node, an.Next)
	default:
		return fmt.Errorf("graph: %w", ErrUnknownKind)
	}
}

// followChain builds (or fetches) the node at targetID and links source to
// it, splicing in an implicit Divergent when both source and the target are
// plain Layer/Input/Output nodes (spec §4.2: "A Layer or Input whose next
// runtime node turns out to also be a Layer/Input is spliced through an
// implicit Divergent node").
func (b *builder) followChain(source *Node, targetID int64) error {
	targetAST, ok := b.tree.Get(targetID)
	if !ok {
		return fmt.Errorf("graph: %w", ErrUnresolvedNode)
	}

	needsSplice := isPlainLayerKind(source.Kind) && targetAST.Kind == ast.KindLayer

	if !needsSplice {
		target, existed := b.getOrCreate(targetAST)
		if err := b.link(source, target, !existed); err != nil {
			return err
		}
		source.Next = target
		if !existed {
			return b.descend(targetAST, target)
		}
		return nil
	}

	b.synthetic--
	div := newNode(b.synthetic, fmt.Sprintf("%s->%s", source.Name, targetAST.Name), KindDivergent)
	b.order = append(b.order, div)
	if err := b.link(source, div, true); err != nil {
		return err
	}
	source.Next = div

	target, existed := b.getOrCreate(targetAST)
	if err := b.link(div, target, !existed); err != nil {
		return err
	}
	div.Next = target
	if !existed {
		return b.descend(targetAST, target)
	}
	return nil
}

func isPlainLayerKind(k Kind) bool {
	return k == KindInput || k == KindLayer
}

// link wires destination's buffers from source per the rules in spec §4.2.
// firstLink distinguishes a node's genuine (buffer-allocating) predecessor
// link from a Convergent's second incoming link, or a no-op re-entry into
// an already-wired node (a convergence's secondary predecessor reached a
// second time, or a recurrent back-edge target).
func (b *builder) link(source, destination *Node, firstLink bool) error {
	switch destination.Kind {
	case KindLayer, KindOutput:
		if !firstLink {
			return nil
		}
		prevWidth := len(source.NeuronBuffer)
		destination.Prev = source
		destination.PrevWidth = prevWidth
		destination.PreviousNeuronBuffer = source.NeuronBuffer
		destination.WeightBuffer = NewDenseBuffer(destination.Width, prevWidth)
		destination.WeightGradient = NewDenseBuffer(destination.Width, prevWidth)
		destination.BiasBuffer = make([]float64, destination.Width)
		destination.GradientBuffer = make([]float64, destination.Width)
	case KindDivergent:
		if !firstLink {
			return nil
		}
		destination.Prev = source
		destination.PrevWidth = len(source.NeuronBuffer)
		destination.Width = destination.PrevWidth
		destination.NeuronBuffer = source.NeuronBuffer
		destination.NeuronBufferRaw = source.NeuronBufferRaw
		destination.GradientBuffer = make([]float64, destination.Width)
	case KindConvergent:
		if firstLink {
			prevWidth := len(source.NeuronBuffer)
			destination.Prev = source
			destination.PrevWidth = prevWidth
			destination.Width = prevWidth
			destination.PreviousNeuronBuffer = source.NeuronBuffer
			destination.NeuronBuffer = make([]float64, destination.Width)
			destination.NeuronBufferRaw = make([]float64, destination.Width)
			destination.GradientBuffer = make([]float64, destination.Width)
			destination.PathGradientBuffer = make([]float64, destination.Width)
			b.registerBacklog(destination)
		} else {
			if len(source.NeuronBuffer) != destination.PrevWidth {
				return fmt.Errorf("graph: convergence %q: secondary predecessor width %d != primary width %d: %w",
					destination.Name, len(source.NeuronBuffer), destination.PrevWidth, ErrWidthMismatch)
			}
			destination.ConvergentNode = source
			destination.ConvergentBuffer = source.NeuronBuffer
		}
	}
	return nil
}
