package graph

import "sync"

// Backlog is the per-batch record of every node's per-sample pre- and
// post-activation values, indexed by BacklogOffset/BacklogOffsetActivation
// (spec §4.2 "register_backlog", §5 "A single mutex on the backlog
// serializes the memcpy of per-sample results").
type Backlog struct {
	mu        sync.Mutex
	data      []float64
	width     int
	batchSize int
}

// NewBacklog allocates a backlog of width × batchSize (spec §3 "Lifecycle":
// allocated once in build).
func NewBacklog(width, batchSize int) *Backlog {
	return &Backlog{data: make([]float64, width*batchSize), width: width, batchSize: batchSize}
}

// Write copies values into sample s's window starting at offset.
func (b *Backlog) Write(s, offset int, values []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	base := s*b.width + offset
	copy(b.data[base:base+len(values)], values)
}

// Read returns a copy of sample s's window [offset, offset+length).
func (b *Backlog) Read(s, offset, length int) []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	base := s*b.width + offset
	out := make([]float64, length)
	copy(out, b.data[base:base+length])
	return out
}

// BatchExpected holds the B target vectors for one batch, contiguously
// (spec §4.2 "batch_expected at the model level").
type BatchExpected struct {
	data      []float64
	width     int
	batchSize int
}

// NewBatchExpected allocates storage for batchSize vectors of the given
// width.
func NewBatchExpected(width, batchSize int) *BatchExpected {
	return &BatchExpected{data: make([]float64, width*batchSize), width: width, batchSize: batchSize}
}

// Set copies sample s's expected vector in.
func (e *BatchExpected) Set(s int, values []float64) {
	base := s * e.width
	copy(e.data[base:base+e.width], values)
}

// Get returns sample s's expected vector.
func (e *BatchExpected) Get(s int) []float64 {
	base := s * e.width
	return e.data[base : base+e.width]
}

// Width returns the per-sample vector width.
func (e *BatchExpected) Width() int { return e.width }
