// Package core defines the dimension-agnostic primitives shared by the
// rest of this module: integer coordinate tuples (MultiVector), axis-aligned
// boxes with optional per-axis periodicity (MultiSpace), and dense/sparse
// value storage keyed by coordinates (MultiArray, MultiDict).
//
// Every other package in this module — tiling and wave — addresses cells,
// directions, and samples exclusively through these four types; nothing
// here knows about tiles, rules, or propagation.
//
// Immutability: MultiVector and MultiSpace are treated as immutable once
// constructed. Callers must not mutate a MultiVector's backing slice after
// handing it to a MultiSpace or MultiArray.
package core
