package forward

import (
	"fmt"
	"sync"

	"github.com/LucAlexander/NeuroMorph/graph"
)

// RunSample runs one forward pass over g for batch element sample, having
// first copied input into the Input node's neuron buffer (spec §4.4: "Input:
// assume caller has copied the sample into neuron_buffer"). It returns the
// scalar loss computed at the Output node.
func RunSample(g *graph.Graph, sample int, input []float64) (float64, error) {
	if len(input) != g.Root.Width {
		return 0, fmt.Errorf("forward: got %d inputs, want %d: %w", len(input), g.Root.Width, ErrWidthMismatch)
	}
	copy(g.Root.NeuronBuffer, input)

	loss, err := runNode(g, g.Root, sample)
	if err != nil {
		return 0, err
	}
	if loss == nil {
		return 0, ErrNoLoss
	}
	return *loss, nil
}

// runNode executes one node's forward action and recurses into its
// successor(s), returning whatever loss value an Output node eventually
// produces along this thread's path.
func runNode(g *graph.Graph, n *graph.Node, sample int) (*float64, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case graph.KindInput:
		g.Backlog.Write(sample, n.BacklogOffset, n.NeuronBuffer)
		return advance(g, n, sample)

	case graph.KindLayer:
		computeLayer(n)
		writeBacklog(g, n, sample)
		return advance(g, n, sample)

	case graph.KindOutput:
		computeLayer(n)
		writeBacklog(g, n, sample)
		loss := n.Loss(n.NeuronBuffer, n.Expected, n.LossParam)
		return &loss, nil

	case graph.KindDivergent:
		return runDivergent(g, n, sample)

	case graph.KindConvergent:
		return runConvergent(g, n, sample)

	default:
		return nil, fmt.Errorf("forward: node %q: %w", n.Name, ErrUnknownKind)
	}
}

// advance recurses into n's successor once n has computed its own output.
// If n is on the secondary branch feeding a Convergent successor, this
// thread instead signals readiness on n and exits with no result (spec §4.4
// "end of branch").
func advance(g *graph.Graph, n *graph.Node, sample int) (*float64, error) {
	if n.EndOfBranch() {
		n.Mu.Lock()
		n.Ready = true
		n.Cond.Broadcast()
		n.Mu.Unlock()
		return nil, nil
	}
	return runNode(g, n.Next, sample)
}

// computeLayer writes y = activation(W*prev + b) into n's raw and neuron
// buffers (spec §4.4 "Layer" row).
func computeLayer(n *graph.Node) {
	for i := 0; i < n.Width; i++ {
		sum := n.BiasBuffer[i]
		for k := 0; k < n.PrevWidth; k++ {
			sum += n.WeightBuffer.At(i, k) * n.PreviousNeuronBuffer[k]
		}
		n.NeuronBufferRaw[i] = sum
	}
	copy(n.NeuronBuffer, n.NeuronBufferRaw)
	n.Activation(n.NeuronBuffer, n.ActivationParam)
}

func writeBacklog(g *graph.Graph, n *graph.Node, sample int) {
	g.Backlog.Write(sample, n.BacklogOffset, n.NeuronBufferRaw)
	g.Backlog.Write(sample, n.BacklogOffset+n.BacklogOffsetActivation, n.NeuronBuffer)
}

// runDivergent spawns one goroutine per additional branch, continues inline
// on the primary branch, then joins all of them (spec §4.4 "Divergent").
func runDivergent(g *graph.Graph, n *graph.Node, sample int) (*float64, error) {
	var wg sync.WaitGroup
	results := make([]*float64, len(n.AdditionalBranches))
	errs := make([]error, len(n.AdditionalBranches))

	for i, branch := range n.AdditionalBranches {
		wg.Add(1)
		go func(i int, b *graph.Node) {
			defer wg.Done()
			r, err := runNode(g, b, sample)
			results[i] = r
			errs[i] = err
		}(i, branch)
	}

	primary, err := runNode(g, n.Next, sample)
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	if err != nil {
		return nil, err
	}
	if primary != nil {
		return primary, nil
	}
	for _, r := range results {
		if r != nil {
			return r, nil
		}
	}
	return nil, nil
}

// runConvergent waits on the secondary predecessor's condition variable,
// applies the convergence operator, and recurses (spec §4.4 "Convergent").
// The wait target is n.ConvergentNode (the secondary predecessor), whose
// own end-of-branch action is what signals it; n.Loop bypasses the wait so
// a recurrent edge cannot deadlock the rendezvous.
func runConvergent(g *graph.Graph, n *graph.Node, sample int) (*float64, error) {
	pred := n.ConvergentNode
	pred.Mu.Lock()
	for !pred.Ready && !pred.Loop {
		pred.Cond.Wait()
	}
	for i := range n.NeuronBuffer {
		n.NeuronBuffer[i] = n.ConvergenceOp(n.ConvergentBuffer[i], n.PreviousNeuronBuffer[i])
	}
	if !pred.Loop {
		pred.Ready = false
	}
	pred.Mu.Unlock()

	g.Backlog.Write(sample, n.BacklogOffset, n.NeuronBuffer)
	g.Backlog.Write(sample, n.OperandBacklogOffset, n.PreviousNeuronBuffer)
	g.Backlog.Write(sample, n.OperandBacklogOffset+n.Width, n.ConvergentBuffer)
	return advance(g, n, sample)
}
