package forward

import "errors"

var (
	// ErrWidthMismatch is returned when the caller's sample does not match
	// the graph's declared input width.
	ErrWidthMismatch = errors.New("forward: input width does not match the graph's input layer")
	// ErrNoLoss is returned if no branch produced a loss value — a
	// malformed graph the legality check should have rejected.
	ErrNoLoss = errors.New("forward: no branch returned a loss value")
	// ErrUnknownKind is returned for a graph.Node whose Kind the executor
	// does not recognize.
	ErrUnknownKind = errors.New("forward: unrecognized node kind")
)
