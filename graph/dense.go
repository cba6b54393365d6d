package graph

import "fmt"

// ErrDenseIndex indicates a row or column index outside a DenseBuffer's
// bounds.
var ErrDenseIndex = fmt.Errorf("graph: dense buffer index out of bounds")

// DenseBuffer is a row-major matrix of float64 weights: r rows (the owning
// layer's width) by c columns (the previous layer's width), backed by one
// flat slice. Adapted from the teacher's matrix.Dense for weight and
// weight-gradient storage (spec §3: "weight buffer (row-major, size =
// prev_width × width)").
type DenseBuffer struct {
	r, c int
	data []float64
}

// NewDenseBuffer allocates an r×c buffer of zeros.
func NewDenseBuffer(r, c int) *DenseBuffer {
	return &DenseBuffer{r: r, c: c, data: make([]float64, r*c)}
}

// Rows returns the row count (the owning node's width).
func (d *DenseBuffer) Rows() int { return d.r }

// Cols returns the column count (the previous node's width).
func (d *DenseBuffer) Cols() int { return d.c }

func (d *DenseBuffer) index(row, col int) (int, error) {
	if row < 0 || row >= d.r || col < 0 || col >= d.c {
		return 0, fmt.Errorf("dense(%d,%d): %w", row, col, ErrDenseIndex)
	}
	return row*d.c + col, nil
}

// At returns the weight connecting previous-node neuron col to this node's
// neuron row.
func (d *DenseBuffer) At(row, col int) float64 {
	idx, err := d.index(row, col)
	if err != nil {
		panic(err)
	}
	return d.data[idx]
}

// Set assigns the weight at (row, col).
func (d *DenseBuffer) Set(row, col int, v float64) {
	idx, err := d.index(row, col)
	if err != nil {
		panic(err)
	}
	d.data[idx] = v
}

// Add accumulates v into the weight at (row, col) — used by the backward
// pass's per-sample weight-gradient accumulation.
func (d *DenseBuffer) Add(row, col int, v float64) {
	idx, err := d.index(row, col)
	if err != nil {
		panic(err)
	}
	d.data[idx] += v
}

// Raw exposes the flat backing slice for bulk operations: initializers
// filling every weight, or the batch-averaging division in the backward
// pass.
func (d *DenseBuffer) Raw() []float64 { return d.data }

// Zero clears every element in place.
func (d *DenseBuffer) Zero() {
	for i := range d.data {
		d.data[i] = 0
	}
}
