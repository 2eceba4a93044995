package wave

import (
	"fmt"

	"github.com/nd-wfc/wfc/core"
	"github.com/nd-wfc/wfc/tiling"
)

// WaveFunction is the observe/propagate engine: selection, collapse,
// propagation, and termination over one output MultiSpace, driven by one
// TilingAnalysis. A WaveFunction holds no mutable state of its own — Run
// allocates and owns a fresh wave (a core.MultiArray of *WaveNode) for the
// duration of one call, so the same WaveFunction (and the same, immutable
// TilingAnalysis) may be reused — including concurrently from separate
// goroutines, each calling Run independently.
type WaveFunction[T comparable] struct {
	outputSpace *core.MultiSpace
	analysis    *tiling.TilingAnalysis[T]
}

// New validates that analysis's direction space and outputSpace agree on
// dimension count, then returns a WaveFunction ready to Run.
func New[T comparable](outputSpace *core.MultiSpace, analysis *tiling.TilingAnalysis[T]) (*WaveFunction[T], error) {
	if outputSpace.DimensionCount() != analysis.DirectionSpace().DimensionCount() {
		return nil, fmt.Errorf("wave: New: output space dim %d != analysis dim %d: %w",
			outputSpace.DimensionCount(), analysis.DirectionSpace().DimensionCount(), ErrDimensionMismatch)
	}

	return &WaveFunction[T]{outputSpace: outputSpace, analysis: analysis}, nil
}

// Wave is the terminal (or partial, on contradiction) state Run returns:
// one WaveNode per cell of the output space.
type Wave[T comparable] = core.MultiArray[*WaveNode[T]]

type stackEntry[T comparable] struct {
	coord  core.MultiVector
	banned T
}

// Run executes the main loop: it allocates one
// WaveNode per output cell, applies any predetermined bans then tiles,
// propagates their consequences, and repeatedly selects the lowest-entropy
// cell, collapses it, and propagates — until every cell has exactly one
// possibility (success, nil error) or propagation finds a cell with zero
// possibilities (ErrContradiction, non-nil). The returned wave is non-nil
// in both cases so callers can inspect a failed run.
func (wf *WaveFunction[T]) Run(rng RNG, opts ...RunOption[T]) (*Wave[T], error) {
	cfg := newRunConfig[T]()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	prototype := newPrototypeNode(wf.analysis)
	wave := core.NewMultiArrayFillCoords(wf.outputSpace, func(core.MultiVector) *WaveNode[T] {
		return prototype.clone()
	})

	var stack []stackEntry[T]

	for _, b := range cfg.predeterminedBans {
		if !wf.outputSpace.InBounds(b.Coord) {
			continue
		}
		coord, err := wf.outputSpace.Simplify(b.Coord)
		if err != nil {
			return wave, err
		}
		node, err := wave.Get(coord)
		if err != nil {
			return wave, err
		}
		if node.unresolvable {
			continue
		}
		if _, ok := node.possible[b.Tile]; !ok {
			continue
		}
		if err := wf.ban(node, coord, b.Tile, cfg, &stack); err != nil {
			return wave, err
		}
	}

	for _, p := range cfg.predeterminedTiles {
		if !wf.outputSpace.InBounds(p.Coord) {
			continue
		}
		coord, err := wf.outputSpace.Simplify(p.Coord)
		if err != nil {
			return wave, err
		}
		if err := wf.collapse(wave, coord, p.Tile, cfg, &stack); err != nil {
			return wave, err
		}
	}

	if err := wf.propagate(wave, &stack, cfg); err != nil {
		return wave, err
	}

	for {
		coord, node, found, err := wf.selectLowestEntropy(wave, rng)
		if err != nil {
			return wave, err
		}
		if !found {
			return wave, nil
		}

		tile, err := wf.weightedChoice(node, rng)
		if err != nil {
			return wave, err
		}

		if err := wf.collapse(wave, coord, tile, cfg, &stack); err != nil {
			return wave, err
		}
		if err := wf.propagate(wave, &stack, cfg); err != nil {
			return wave, err
		}
	}
}

// ban applies node.Ban, invokes the OnBan hook, and pushes the ban onto
// the propagation stack, even when the ban left the node with no
// possibilities (callers check Unresolvable afterwards). It is the shared
// tail of predetermined-ban application, collapse, and propagation bans.
func (wf *WaveFunction[T]) ban(node *WaveNode[T], coord core.MultiVector, tile T, cfg *runConfig[T], stack *[]stackEntry[T]) error {
	if err := node.Ban(tile); err != nil {
		return err
	}
	cfg.onBan(coord, tile)
	*stack = append(*stack, stackEntry[T]{coord: coord, banned: tile})

	return nil
}

// collapse reduces the node at coord to exactly `selected`: every other
// currently-possible tile is banned (even ones the caller already
// intends to forbid), so propagation sees every forbidden alternative.
func (wf *WaveFunction[T]) collapse(wave *Wave[T], coord core.MultiVector, selected T, cfg *runConfig[T], stack *[]stackEntry[T]) error {
	node, err := wave.Get(coord)
	if err != nil {
		return err
	}
	if node.unresolvable {
		return nil
	}

	for _, t := range node.Possibilities() {
		if t == selected {
			continue
		}
		if err := wf.ban(node, coord, t, cfg, stack); err != nil {
			return err
		}
	}
	cfg.onCollapse(coord, selected)

	return nil
}

// propagate drains the ban stack: for each popped
// (coord, banned), every non-zero direction's neighbor is checked, and any
// tile there that depended on `banned` as a supporter loses one unit of
// support; if that drops a tile's counter to zero, the tile is banned
// there too and pushed back onto the stack. LIFO order means this is a
// depth-first walk of the ban dependency graph.
func (wf *WaveFunction[T]) propagate(wave *Wave[T], stack *[]stackEntry[T], cfg *runConfig[T]) error {
	directions := wf.analysis.NonZeroDirections()

	for len(*stack) > 0 {
		n := len(*stack) - 1
		entry := (*stack)[n]
		*stack = (*stack)[:n]

		for _, d := range directions {
			shifted, err := entry.coord.Add(d)
			if err != nil {
				return err
			}
			cAdj, err := wf.outputSpace.Simplify(shifted)
			if err != nil {
				return err
			}
			if !wf.outputSpace.InBounds(cAdj) {
				continue
			}

			adjNode, err := wave.Get(cAdj)
			if err != nil {
				return err
			}
			if adjNode.unresolvable {
				continue
			}

			negD := d.Negate()
			for _, t2 := range adjNode.Possibilities() {
				rule := tiling.NewTilingRule(entry.banned, t2, d)
				if !wf.analysis.Contains(rule) {
					continue
				}
				stillPossible := adjNode.possible[t2].removeFrom(negD, 1)
				if stillPossible {
					continue
				}
				if err := wf.ban(adjNode, cAdj, t2, cfg, stack); err != nil {
					return err
				}
				if adjNode.unresolvable {
					return fmt.Errorf("wave: propagate: at %v: %w", cAdj, ErrContradiction)
				}
			}
		}
	}

	return nil
}

// selectLowestEntropy scans the wave, in the output space's canonical
// enumeration order, for the node with the smallest current entropy among
// nodes with more than one remaining possibility. Ties are broken by a
// uniform draw from rng over every tied candidate — candidates are
// collected in canonical order first so the draw's index has a fixed,
// reproducible meaning. A node already driven to zero possibilities (by
// a predetermined ban that propagation never touches) is reported as an
// immediate contradiction rather than silently skipped, matching
// propagate's own contradiction check.
func (wf *WaveFunction[T]) selectLowestEntropy(wave *Wave[T], rng RNG) (core.MultiVector, *WaveNode[T], bool, error) {
	var (
		candidates []core.MultiVector
		minEntropy float64
	)

	err := wf.outputSpace.ForEachPoint(func(c core.MultiVector) error {
		node, err := wave.Get(c)
		if err != nil {
			return err
		}
		if node.Unresolvable() {
			return fmt.Errorf("wave: selectLowestEntropy: at %v: %w", c, ErrContradiction)
		}
		if node.PossibilityCount() <= 1 {
			return nil
		}
		switch {
		case len(candidates) == 0, node.Entropy() < minEntropy:
			candidates = []core.MultiVector{c}
			minEntropy = node.Entropy()
		case node.Entropy() == minEntropy:
			candidates = append(candidates, c)
		}

		return nil
	})
	if err != nil {
		return core.MultiVector{}, nil, false, err
	}
	if len(candidates) == 0 {
		return core.MultiVector{}, nil, false, nil
	}

	coord := candidates[0]
	if len(candidates) > 1 {
		coord = candidates[rng.Intn(len(candidates))]
	}
	node, err := wave.Get(coord)
	if err != nil {
		return core.MultiVector{}, nil, false, err
	}

	return coord, node, true, nil
}

// weightedChoice draws a tile from node's remaining possibilities with
// probability proportional to analysis weight: draw r in [0,W) uniformly
// and walk the (canonically ordered) list subtracting weight until
// r < w. Returns ErrInternal if the total weight is not positive —
// every live node's invariant (currentTotalWeight equals the sum of
// remaining possibility weights) means this should never trigger in a
// correctly-maintained wave.
func (wf *WaveFunction[T]) weightedChoice(node *WaveNode[T], rng RNG) (T, error) {
	var zero T

	total := node.currentTotalWeight
	if total <= 0 {
		return zero, ErrInternal
	}

	r := rng.Float64() * total
	tiles := node.Possibilities()
	for i, t := range tiles {
		w, _, _ := wf.analysis.Weight(t)
		if r < w || i == len(tiles)-1 {
			return t, nil
		}
		r -= w
	}

	return zero, ErrInternal
}
