package wave

import "github.com/nd-wfc/wfc/core"

// PredeterminedTile pins a cell to a tile before the main loop runs,
// equivalent to an early manual Collapse. Coordinates outside the output
// space are silently ignored, not an error; on a periodic axis every
// integer is in bounds and is wrapped into range.
type PredeterminedTile[T comparable] struct {
	Coord core.MultiVector
	Tile  T
}

// PredeterminedBan forbids a tile at a cell before the main loop runs,
// equivalent to an early manual Ban. Coordinates outside the output space
// are silently ignored; on a periodic axis every integer is in bounds and
// is wrapped into range.
type PredeterminedBan[T comparable] struct {
	Coord core.MultiVector
	Tile  T
}

// RunOption configures a WaveFunction.Run invocation: a closure over a
// private, unexported config struct, applied left-to-right, later
// options overriding earlier ones for scalar fields and appending for
// slice fields.
type RunOption[T comparable] func(*runConfig[T])

type runConfig[T comparable] struct {
	predeterminedTiles []PredeterminedTile[T]
	predeterminedBans  []PredeterminedBan[T]
	onCollapse         func(c core.MultiVector, tile T)
	onBan              func(c core.MultiVector, tile T)
}

func newRunConfig[T comparable]() *runConfig[T] {
	return &runConfig[T]{
		onCollapse: func(core.MultiVector, T) {},
		onBan:      func(core.MultiVector, T) {},
	}
}

// WithPredeterminedTiles collapses each listed cell to its tile before the
// main loop begins, in list order. Using the same coordinate more than
// once across calls/slices applies them in argument order; a later
// collapse to a tile that is no longer possible at that cell bans every
// remaining tile there, and Run then reports ErrContradiction.
func WithPredeterminedTiles[T comparable](tiles []PredeterminedTile[T]) RunOption[T] {
	return func(cfg *runConfig[T]) {
		cfg.predeterminedTiles = append(cfg.predeterminedTiles, tiles...)
	}
}

// WithPredeterminedBans bans each listed (coord, tile) pair before the
// main loop begins, in list order.
func WithPredeterminedBans[T comparable](bans []PredeterminedBan[T]) RunOption[T] {
	return func(cfg *runConfig[T]) {
		cfg.predeterminedBans = append(cfg.predeterminedBans, bans...)
	}
}

// WithOnCollapse registers a callback invoked every time Run collapses a
// cell to a chosen tile: once per main-loop observation and once per
// WithPredeterminedTiles entry. Cells left with a single tile by
// propagation do not trigger it. Purely an observability hook — it cannot affect
// the algorithm's outcome. A nil callback is a no-op.
func WithOnCollapse[T comparable](fn func(c core.MultiVector, tile T)) RunOption[T] {
	return func(cfg *runConfig[T]) {
		if fn != nil {
			cfg.onCollapse = fn
		}
	}
}

// WithOnBan registers a callback invoked every time a tile is banned at a
// cell: by a predetermined ban, by a collapse, or during propagation. A nil
// callback is a no-op.
func WithOnBan[T comparable](fn func(c core.MultiVector, tile T)) RunOption[T] {
	return func(cfg *runConfig[T]) {
		if fn != nil {
			cfg.onBan = fn
		}
	}
}
