// Package loopmark implements the depth-first recurrent-edge marker over a
// built graph.Graph (spec §4.3 "Loop Marker"). It walks from the Input using
// an explicit visited *stack* — not a set, since what matters is whether a
// successor lies on the current ancestor path, not whether it was ever
// visited anywhere in the graph — and sets a node's Loop bit when one of its
// own outgoing edges closes a cycle, and a node's LoopStart bit when it is
// the ancestor that edge closes onto.
//
// These bits let the forward and backward executors recognize a recurrent
// edge and substitute a snapshot read for what would otherwise be a
// deadlocked wait (spec §4.4, §4.5 "Recurrent edges").
package loopmark
