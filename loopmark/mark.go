package loopmark

import "github.com/LucAlexander/NeuroMorph/graph"

// Mark runs the DFS loop marker from g's Input, setting Loop and LoopStart
// bits on every node that participates in a recurrent back-edge (spec
// §4.3). It is idempotent: calling it twice is harmless since a node
// already marked simply gets marked again with the same value.
func Mark(g *graph.Graph) {
	w := &walker{}
	w.dfs(g.Root, nil)
}

type walker struct{}

// dfs visits n with stack holding n's ancestors (innermost last, not
// including n itself). It returns the set of ancestor ids that some
// back-edge within n's subtree closed onto, so the caller can tell whether
// its own child is that target (spec step 2's "if recursion reports it was
// itself the loop target, set loop_start = true on the successor").
func (w *walker) dfs(n *graph.Node, stack []*graph.Node) map[int64]bool {
	stack = append(stack, n)
	closed := make(map[int64]bool)

	successors := make([]*graph.Node, 0, 1+len(n.AdditionalBranches))
	if n.Next != nil {
		successors = append(successors, n.Next)
	}
	successors = append(successors, n.AdditionalBranches...)

	for _, succ := range successors {
		if onStack(stack, succ) {
			n.Loop = true
			closed[succ.ID] = true
			continue
		}
		sub := w.dfs(succ, stack)
		if sub[succ.ID] {
			succ.LoopStart = true
			delete(sub, succ.ID)
		}
		for id := range sub {
			closed[id] = true
		}
	}
	return closed
}

func onStack(stack []*graph.Node, n *graph.Node) bool {
	for _, s := range stack {
		if s.ID == n.ID {
			return true
		}
	}
	return false
}
