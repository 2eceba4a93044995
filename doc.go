// Package wfc is an N-dimensional generalization of Wave Function Collapse:
// a library for learning local adjacency rules from a sample and solving a
// larger output space by repeated lowest-entropy selection, weighted
// random collapse, and constraint propagation.
//
// Everything is organized under three subpackages:
//
//	core/   — MultiVector, MultiSpace, MultiArray, MultiDict: the
//	          dimension-agnostic geometry and storage every other package
//	          builds on.
//	tiling/ — TilingRule and TilingAnalysis: learning (or explicitly
//	          declaring) adjacency rules and tile frequencies.
//	wave/   — WaveNode and WaveFunction: the observe/propagate solver.
//
// A minimal run looks like:
//
//	sample, _ := core.NewMultiArrayFromSlice(sampleSpace, tiles)
//	analysis, _ := tiling.FromSample[string](sample)
//	wf, _ := wave.New[string](outputSpace, analysis)
//	result, err := wf.Run(wave.NewMathRand(1))
package wfc
