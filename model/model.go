package model

import (
	"fmt"

	"github.com/LucAlexander/NeuroMorph/ast"
	"github.com/LucAlexander/NeuroMorph/backward"
	"github.com/LucAlexander/NeuroMorph/diagnostics"
	"github.com/LucAlexander/NeuroMorph/forward"
	"github.com/LucAlexander/NeuroMorph/graph"
	"github.com/LucAlexander/NeuroMorph/loopmark"
	"github.com/LucAlexander/NeuroMorph/mdl"
	"github.com/LucAlexander/NeuroMorph/rng"
)

// Model is the handle returned by Compile and consumed by Build/TrainBatch.
type Model struct {
	tree         *ast.AST
	header       mdl.Header
	batchSize    int
	learningRate float64

	graph *graph.Graph
}

var diag = diagnostics.Default()

// Compile parses and legality-checks description without allocating any
// runtime buffers (spec §6.3 "compile"). Callers must still call Build
// before TrainBatch.
func Compile(description string, batchSize int, learningRate float64) (*Model, error) {
	tree, header, err := mdl.Parse(description)
	if err != nil {
		diag.Report("compile", description, err)
		return nil, err
	}
	return &Model{tree: tree, header: header, batchSize: batchSize, learningRate: learningRate}, nil
}

// Build allocates and wires every runtime buffer, marks loop edges, and
// draws initial weights/biases from the header's selected initializers
// (spec §6.3 "build").
func Build(m *Model) error {
	if m.graph != nil {
		diag.Report("build", "model already built", ErrAlreadyBuilt)
		return ErrAlreadyBuilt
	}
	g, err := graph.Build(m.tree, m.batchSize)
	if err != nil {
		diag.Report("build", "graph construction failed", err)
		return err
	}
	loopmark.Mark(g)
	graph.InitializeParameters(g, rng.Default(),
		m.header.WeightInit.Fn, m.header.WeightInitParams,
		m.header.BiasInit.Fn, m.header.BiasInitParams)
	m.graph = g
	return nil
}

// TrainBatch runs one minibatch: B forward passes (writing into the
// backlog) followed by one backward pass and parameter update, returning
// the mean loss over the batch (spec §6.3 "train_batch").
func TrainBatch(m *Model, inputs, expecteds [][]float64, verbose bool) (float64, error) {
	if m.graph == nil {
		diag.Report("train_batch", "model not built", ErrNotBuilt)
		return 0, ErrNotBuilt
	}
	g := m.graph
	if len(inputs) != g.BatchSize || len(expecteds) != g.BatchSize {
		diag.Report("train_batch", "batch size mismatch", ErrBatchSizeMismatch)
		return 0, ErrBatchSizeMismatch
	}

	var total float64
	for s := 0; s < g.BatchSize; s++ {
		if len(inputs[s]) != g.Root.Width || len(expecteds[s]) != g.Output.Width {
			diag.Report("train_batch", fmt.Sprintf("sample %d width mismatch", s), ErrWidthMismatch)
			return 0, ErrWidthMismatch
		}
		copy(g.Output.Expected, expecteds[s])
		g.Expected.Set(s, expecteds[s])

		loss, err := forward.RunSample(g, s, inputs[s])
		if err != nil {
			diag.Report("train_batch", fmt.Sprintf("sample %d forward pass", s), err)
			return 0, err
		}
		total += loss
		if verbose {
			diag.Report("train_batch", fmt.Sprintf("sample %d loss %g", s, loss), nil)
		}
	}

	backward.RunBatch(g, m.learningRate)

	mean := total / float64(g.BatchSize)
	if verbose {
		diag.Report("train_batch", fmt.Sprintf("mean loss %g", mean), nil)
	}
	return mean, nil
}

// Train runs TrainBatch once per corresponding pair of batches, returning
// the mean loss over every batch (spec §6.3 "train").
func Train(m *Model, inputBatches, expectedBatches [][][]float64, verbose bool) (float64, error) {
	if len(inputBatches) != len(expectedBatches) {
		diag.Report("train", "input/expected batch count mismatch", ErrBatchSizeMismatch)
		return 0, ErrBatchSizeMismatch
	}
	var total float64
	for i := range inputBatches {
		loss, err := TrainBatch(m, inputBatches[i], expectedBatches[i], verbose)
		if err != nil {
			return 0, err
		}
		total += loss
	}
	if len(inputBatches) == 0 {
		return 0, nil
	}
	return total / float64(len(inputBatches)), nil
}

// Seed reseeds the package-wide default PRNG (spec §6.3 "seed(u64)").
func Seed(seed uint64) {
	rng.Seed(seed)
}

// Release drops the model's reference to its runtime graph. Go's garbage
// collector reclaims the buffers once nothing else retains them; there is
// no explicit free step the way spec §6.3's "release" implies for a
// manually-managed-memory host language.
func Release(m *Model) {
	m.graph = nil
}
