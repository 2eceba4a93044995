// Package wave implements the observe/propagate engine: WaveNode,
// TileEnablement, and WaveFunction. This is the algorithmic core of the
// module — everything else exists to feed it a tiling.TilingAnalysis and
// a core.MultiSpace.
//
// What
//
//   - WaveFunction.Run allocates one WaveNode per output cell, applies any
//     predetermined tile assignments and bans, propagates their
//     consequences, then repeatedly selects the lowest-entropy cell,
//     collapses it to a single tile by weighted random choice, and
//     propagates the resulting bans until every cell has exactly one
//     possibility (success) or some cell runs out of possibilities
//     (contradiction).
//
// Why
//
//   - This is the textbook Wave Function Collapse main loop, generalized
//     to an arbitrary MultiSpace instead of a fixed 2-D grid.
//
// Determinism
//
//	Given the same analysis, output space, options, and RNG stream, two
//	Run calls produce identical terminal waves. This requires every
//	internal enumeration that feeds an RNG draw —
//	tile order within a node, cell order during the lowest-entropy scan —
//	to be canonical rather than Go's randomized map iteration order; see
//	WaveNode.Possibilities and the cell scan in WaveFunction.Run.
//
// Complexity (C = cells, K = tiles, D = directions)
//
//   - Prototype construction: O(K*D).
//   - Per-cell clone: O(K*D).
//   - Propagation: O(C*K*D) amortized over a successful run (each
//     possibility is banned at most once per node).
//   - Selection: O(C) per collapse, dominating total runtime for large C.
package wave
