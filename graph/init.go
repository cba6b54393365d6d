package graph

import "github.com/LucAlexander/NeuroMorph/rng"

// InitializeParameters iterates g's adjacency and fills every Layer/Output
// node's weight and bias buffers using the header-selected initializers
// (spec §2 item 7 "Weight/Bias Initializer", §6.1). a/b are the
// initializer's 0-2 numeric parameters, padded with zeros if the
// initializer needs fewer.
func InitializeParameters(g *Graph, src *rng.Source, weightInit rng.WeightInitFn, weightParams []float64, biasInit rng.BiasInitFn, biasParams []float64) {
	wa, wb := param(weightParams, 0), param(weightParams, 1)
	ba, bb := param(biasParams, 0), param(biasParams, 1)
	for _, n := range g.Nodes {
		if n.Kind != KindLayer && n.Kind != KindOutput {
			continue
		}
		weightInit(src, n.WeightBuffer.Raw(), n.PrevWidth, n.Width, wa, wb)
		biasInit(src, n.BiasBuffer, ba, bb)
	}
}

func param(params []float64, i int) float64 {
	if i < len(params) {
		return params[i]
	}
	return 0
}
