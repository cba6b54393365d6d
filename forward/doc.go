// Package forward implements the parallel forward executor (spec §4.4):
// one goroutine per divergent branch, rendezvousing at Convergent nodes via
// a per-node mutex and condition variable rather than a thread pool or
// channel-based pipeline, matching the spec's explicit mutex+condvar
// rendezvous design.
//
// RunSample drives a single sample through the graph built by graph.Build,
// writing every node's pre- and post-activation values into the batch
// backlog as it goes, and returns the scalar loss produced at the Output
// node.
package forward
