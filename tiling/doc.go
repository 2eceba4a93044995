// Package tiling extracts or accepts adjacency rules and tile frequencies:
// the TilingRule and TilingAnalysis types.
//
// A TilingAnalysis is built once — either by scanning an example tiling
// (FromSample) or from an explicit rule set and tile-weight list
// (FromExplicit) — and is read-only thereafter. It may be shared by
// multiple concurrent wave.WaveFunction runs, each owning its own wave.
//
// Design contract:
//   - FromSample and FromExplicit never panic; all failure modes surface
//     as sentinel errors (ErrDimensionMismatch, ErrEmptySample,
//     ErrDuplicateTileCount, ErrNonPositiveWeight).
//   - FromExplicit resolves variadic FromExplicitOption values against a
//     private config before validating rules.
package tiling
