package backward

import (
	"sync"

	"github.com/LucAlexander/NeuroMorph/graph"
)

// RunBatch runs one backward pass over g, averaging accumulated gradients
// over g.BatchSize, then applies a plain SGD update to every Layer/Output
// node's weights and biases. The update runs after the whole walk, so every
// upstream gradient is computed against the weights the forward passes used.
// Callers must have already run forward.RunSample for every sample in the
// batch and populated g.Expected.
func RunBatch(g *graph.Graph, learningRate float64) {
	backwardNode(g, g.Output, learningRate)
	for _, n := range g.Nodes {
		if n.Kind == graph.KindLayer || n.Kind == graph.KindOutput {
			applyUpdate(n, learningRate)
		}
	}
}

func backwardNode(g *graph.Graph, n *graph.Node, lr float64) {
	if n == nil {
		return
	}
	switch n.Kind {
	case graph.KindOutput:
		backwardOutput(g, n, lr)
	case graph.KindLayer:
		backwardLayer(g, n, lr)
	case graph.KindDivergent:
		backwardDivergent(g, n, lr)
	case graph.KindConvergent:
		backwardConvergent(g, n, lr)
	case graph.KindInput:
		return
	}
	if n.LoopStart {
		n.GradSnapshot = append(n.GradSnapshot[:0], n.GradientBuffer...)
	}
}

// climb decides whether n continues the backward walk into its own
// predecessor, or whether n is a non-primary consumer of a Divergent and
// must instead signal back_ready and stop — the primary branch's own climb
// is what actually enters the Divergent and sums every consumer.
func climb(g *graph.Graph, n *graph.Node, lr float64) {
	if isDivergentSecondary(n) {
		n.Mu.Lock()
		n.BackReady = true
		n.Cond.Broadcast()
		n.Mu.Unlock()
		return
	}
	backwardNode(g, n.Prev, lr)
}

func isDivergentSecondary(n *graph.Node) bool {
	return n.Prev != nil && n.Prev.Kind == graph.KindDivergent && n.Prev.Next != n
}

func waitBackReady(c *graph.Node) {
	c.Mu.Lock()
	for !c.BackReady && !c.Loop {
		c.Cond.Wait()
	}
	if !c.Loop {
		c.BackReady = false
	}
	c.Mu.Unlock()
}

// backlogSource follows a chain of implicit Divergent splices back to the
// node that actually owns a backlog slot (Divergent nodes store nothing of
// their own; they alias their source's buffers).
func backlogSource(n *graph.Node) *graph.Node {
	for n.Kind == graph.KindDivergent {
		n = n.Prev
	}
	return n
}

// computeBase returns the gradient n's successor wants from n (spec §4.5
// "base gradient"): a transposed-weight multiply against a Layer/Output
// successor, or a direct copy of whatever the successor's own backward step
// already filled in for a Divergent/Convergent successor. A back-edge (n.Loop)
// reads last batch's snapshot at the loop-start node instead of this
// successor's current value, since that successor has not been reached yet
// in this batch's single-threaded walk.
func computeBase(n *graph.Node) []float64 {
	base := make([]float64, n.Width)
	next := n.Next
	if next == nil {
		return base
	}
	if n.Loop {
		if next.GradSnapshot != nil {
			copy(base, next.GradSnapshot)
		}
		return base
	}
	addBase(base, n, next)
	return base
}

// addBase adds into base the gradient that consumer wants from n: a
// transposed-weight multiply for a Layer/Output consumer, or the buffer a
// Divergent/Convergent consumer's own backward step already filled in.
func addBase(base []float64, n, consumer *graph.Node) {
	var src []float64
	switch consumer.Kind {
	case graph.KindLayer, graph.KindOutput:
		for i := 0; i < consumer.Width; i++ {
			gi := consumer.GradientBuffer[i]
			for k := 0; k < n.Width; k++ {
				base[k] += consumer.WeightBuffer.At(i, k) * gi
			}
		}
		return
	case graph.KindDivergent:
		src = consumer.GradientBuffer
	case graph.KindConvergent:
		src = consumer.PathGradientBuffer
		if consumer.Prev == n {
			src = consumer.GradientBuffer
		}
	}
	for i := range src {
		base[i] += src[i]
	}
}

// averageGradients divides a Layer/Output node's accumulated gradient and
// weight-gradient buffers by the batch size (spec §4.5: "divide ... by B").
func averageGradients(n *graph.Node, batchSize int) {
	b := float64(batchSize)
	for i := 0; i < n.Width; i++ {
		n.GradientBuffer[i] /= b
	}
	wg := n.WeightGradient.Raw()
	for idx := range wg {
		wg[idx] /= b
	}
}

// applyUpdate applies the SGD step to a Layer/Output node (spec §4.5:
// "bias[i] -= lr*gradient[i] and weight[i,k] -= lr*weight_gradient[i,k]").
func applyUpdate(n *graph.Node, lr float64) {
	for i := 0; i < n.Width; i++ {
		n.BiasBuffer[i] -= lr * n.GradientBuffer[i]
	}
	wg := n.WeightGradient.Raw()
	wb := n.WeightBuffer.Raw()
	for idx := range wg {
		wb[idx] -= lr * wg[idx]
	}
}

func backwardOutput(g *graph.Graph, n *graph.Node, lr float64) {
	for i := range n.GradientBuffer {
		n.GradientBuffer[i] = 0
	}
	n.WeightGradient.Zero()

	prevSrc := backlogSource(n.Prev)
	batchSize := g.BatchSize
	for s := 0; s < batchSize; s++ {
		raw := g.Backlog.Read(s, n.BacklogOffset, n.Width)
		post := g.Backlog.Read(s, n.BacklogOffset+n.BacklogOffsetActivation, n.Width)
		expected := g.Expected.Get(s)
		dLda := n.LossDerivative(post, expected, n.LossParam)

		for i := 0; i < n.Width; i++ {
			n.NeuronBuffer[i] = n.ActivationDerivative(raw[i], post[i], n.ActivationParam) * dLda[i]
		}

		prevPost := g.Backlog.Read(s, prevSrc.BacklogOffset+prevSrc.BacklogOffsetActivation, prevSrc.Width)
		for i := 0; i < n.Width; i++ {
			n.GradientBuffer[i] += n.NeuronBuffer[i]
			for k := 0; k < n.PrevWidth; k++ {
				n.WeightGradient.Add(i, k, n.NeuronBuffer[i]*prevPost[k])
			}
		}
	}

	averageGradients(n, batchSize)
	climb(g, n, lr)
}

func backwardLayer(g *graph.Graph, n *graph.Node, lr float64) {
	base := computeBase(n)

	for i := range n.GradientBuffer {
		n.GradientBuffer[i] = 0
	}
	n.WeightGradient.Zero()

	prevSrc := backlogSource(n.Prev)
	batchSize := g.BatchSize
	for s := 0; s < batchSize; s++ {
		raw := g.Backlog.Read(s, n.BacklogOffset, n.Width)
		post := g.Backlog.Read(s, n.BacklogOffset+n.BacklogOffsetActivation, n.Width)
		prevPost := g.Backlog.Read(s, prevSrc.BacklogOffset+prevSrc.BacklogOffsetActivation, prevSrc.Width)

		for i := 0; i < n.Width; i++ {
			d := n.ActivationDerivative(raw[i], post[i], n.ActivationParam) * base[i]
			n.GradientBuffer[i] += d
			for k := 0; k < n.PrevWidth; k++ {
				n.WeightGradient.Add(i, k, d*prevPost[k])
			}
		}
	}

	averageGradients(n, batchSize)
	climb(g, n, lr)
}

// backwardDivergent sums every consumer's contribution (spec §4.5:
// "Divergent (back-pass)"): the gradient each consumer wants from this node,
// added into its GradientBuffer. The primary consumer drives this call
// directly; every additional branch signals back_ready from climb and this
// call waits on each in turn before summing.
func backwardDivergent(g *graph.Graph, n *graph.Node, lr float64) {
	for _, c := range n.AdditionalBranches {
		waitBackReady(c)
	}

	for i := range n.GradientBuffer {
		n.GradientBuffer[i] = 0
	}
	consumers := make([]*graph.Node, 0, 1+len(n.AdditionalBranches))
	consumers = append(consumers, n.Next)
	consumers = append(consumers, n.AdditionalBranches...)
	for _, c := range consumers {
		addBase(n.GradientBuffer, n, c)
	}

	climb(g, n, lr)
}

// backwardConvergent splits the incoming gradient via the registered
// convergence derivative, spawns one goroutine up the secondary predecessor,
// and continues inline up the primary (spec §4.5: "Convergent (back-pass)").
// The base gradient (gIn) is computed once like a Layer's, then combined per
// sample with that sample's own operand values read back from the backlog
// and averaged over the batch — multiplicative's derivative is scaled by the
// actual operand values, so reading only the last sample's live buffers
// would silently split the gradient against the wrong operands whenever
// BatchSize > 1.
func backwardConvergent(g *graph.Graph, n *graph.Node, lr float64) {
	gIn := computeBase(n)

	for i := range n.GradientBuffer {
		n.GradientBuffer[i] = 0
		n.PathGradientBuffer[i] = 0
	}

	batchSize := g.BatchSize
	for s := 0; s < batchSize; s++ {
		prevVal := g.Backlog.Read(s, n.OperandBacklogOffset, n.Width)
		pathVal := g.Backlog.Read(s, n.OperandBacklogOffset+n.Width, n.Width)
		for i := 0; i < n.Width; i++ {
			gPrev, gPath := n.ConvergenceDerivative(pathVal[i], prevVal[i], gIn[i])
			n.GradientBuffer[i] += gPrev
			n.PathGradientBuffer[i] += gPath
		}
	}
	for i := range n.GradientBuffer {
		n.GradientBuffer[i] /= float64(batchSize)
		n.PathGradientBuffer[i] /= float64(batchSize)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		backwardNode(g, n.ConvergentNode, lr)
	}()
	wg.Wait()

	climb(g, n, lr)
}
