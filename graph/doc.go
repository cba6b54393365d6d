// Package graph lowers a parsed ast.AST into a runtime dataflow graph: typed
// nodes ({Input, Layer, Output, Divergent, Convergent}) holding allocated
// neuron, weight, bias, and gradient buffers, wired so that a Divergent
// node's activations are a zero-copy alias of its predecessor's and a
// Convergent node's two operand buffers alias its two predecessors'
// (spec §3 "Buffer-sharing invariants", §4.2 "Runtime Graph Builder").
//
// Build walks the AST starting at the root in graph order (predecessors
// before successors), memoizing already-built nodes in a domain map so that
// a convergence's second predecessor, or a genuine recurrent back-edge,
// reuses the existing runtime node rather than duplicating it.
package graph
