// Package model implements the top-level API surface (spec §6.3): compile,
// build, train_batch, train, seed, release. Compile parses and legality-
// checks an MDL description without allocating any runtime buffers; Build
// lowers it into a graph.Graph, marks loop edges, and draws initial
// weights/biases. TrainBatch drives one minibatch of forward passes
// followed by a single backward pass.
package model
