package loopmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucAlexander/NeuroMorph/graph"
	"github.com/LucAlexander/NeuroMorph/loopmark"
)

func chainNode(id int64) *graph.Node {
	n := &graph.Node{ID: id}
	return n
}

func TestMarkAcyclicGraphSetsNoBits(t *testing.T) {
	a := chainNode(1)
	b := chainNode(2)
	c := chainNode(3)
	a.Next = b
	b.Next = c

	g := &graph.Graph{Root: a}
	loopmark.Mark(g)

	assert.False(t, a.Loop)
	assert.False(t, b.Loop)
	assert.False(t, c.Loop)
	assert.False(t, a.LoopStart)
	assert.False(t, b.LoopStart)
	assert.False(t, c.LoopStart)
}

func TestMarkSimpleCycleMarksClosingEdgeAndTarget(t *testing.T) {
	a := chainNode(1)
	b := chainNode(2)
	c := chainNode(3)
	a.Next = b
	b.Next = c
	c.Next = b // back-edge: c closes the cycle onto b

	g := &graph.Graph{Root: a}
	loopmark.Mark(g)

	assert.True(t, c.Loop, "c's outgoing edge closes the cycle")
	assert.True(t, b.LoopStart, "b is the ancestor the cycle closes onto")
	assert.False(t, a.Loop)
	assert.False(t, c.LoopStart)
	assert.False(t, b.Loop)
}

func TestMarkDivergentFanOutBothBranchesVisited(t *testing.T) {
	root := chainNode(1)
	div := chainNode(2)
	left := chainNode(3)
	right := chainNode(4)
	join := chainNode(5)
	root.Next = div
	div.Next = left
	div.AdditionalBranches = []*graph.Node{right}
	left.Next = join
	right.Next = join

	g := &graph.Graph{Root: root}
	loopmark.Mark(g)

	assert.False(t, div.Loop)
	assert.False(t, join.LoopStart)
}
