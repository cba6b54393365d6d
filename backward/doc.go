// Package backward implements the batch-level backward executor (spec
// §4.5): a single-threaded traversal rooted at the Output node that walks
// predecessors, averaging gradients over the batch backlog and applying
// plain SGD. Convergent nodes fan the walk out (one goroutine up the
// secondary predecessor, inline continuation up the primary); Divergent
// nodes are the corresponding join points, where every non-primary branch
// signals back_ready and the primary branch sums all consumer
// contributions before continuing.
package backward
