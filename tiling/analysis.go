package tiling

import (
	"errors"
	"fmt"
	"math"

	"github.com/nd-wfc/wfc/core"
)

// Sentinel errors for tiling package operations.
var (
	// ErrDimensionMismatch indicates a rule's direction, or the sample's
	// space, disagrees in dimension count with the analysis being built.
	ErrDimensionMismatch = errors.New("tiling: dimension mismatch")

	// ErrEmptySample indicates FromSample was given a sample over an empty
	// space (PointCount == 0) or one containing no present tiles at all.
	ErrEmptySample = errors.New("tiling: sample contains no tiles")

	// ErrDuplicateTileCount indicates the same tile appears more than once
	// in a FromExplicit tile-count list.
	ErrDuplicateTileCount = errors.New("tiling: duplicate tile in tile-count list")

	// ErrNonPositiveWeight indicates a tile-count entry has weight <= 0;
	// every tile referenced by a rule must carry weight >= 1.
	ErrNonPositiveWeight = errors.New("tiling: tile weight must be >= 1")
)

// Sample is the read-only view FromSample scans: a MultiSpace plus an
// At(coord) lookup reporting whether a tile is actually present there.
// *core.MultiArray[T] and *core.MultiDict[T] both satisfy this directly.
type Sample[T comparable] interface {
	Space() *core.MultiSpace
	At(c core.MultiVector) (tile T, ok bool)
}

// TileCount pairs a tile with its frequency weight. FromExplicit takes an
// ordered []TileCount rather than a map so that tile enumeration order —
// and therefore weighted-choice draws during wave.Run — is deterministic
// regardless of Go's randomized map iteration.
type TileCount[T comparable] struct {
	Tile   T
	Weight int
}

// tileWeight is the (w, w*ln(w)) pair kept precomputed per tile and as a
// running total.
type tileWeight struct {
	w, wlogw float64
}

func weightOf(count int) tileWeight {
	w := float64(count)
	if w <= 0 {
		return tileWeight{}
	}

	return tileWeight{w: w, wlogw: w * math.Log(w)}
}

func (a tileWeight) add(b tileWeight) tileWeight {
	return tileWeight{w: a.w + b.w, wlogw: a.wlogw + b.wlogw}
}

// entropy computes ln(W) - WlogW/W, the Shannon entropy of a weight
// multiset whose total is W and whose Σ w·ln(w) is WlogW. A zero-weight
// total has zero entropy by convention (an empty possibility set never
// reaches this code path in practice; it exists for max_entropy on a
// degenerate single-tile analysis where ln(w) - w·ln(w)/w == 0 exactly).
func (a tileWeight) entropy() float64 {
	if a.w <= 0 {
		return 0
	}

	return math.Log(a.w) - a.wlogw/a.w
}

// TilingAnalysis is a read-only set of adjacency rules, tile weights, and
// derived totals, built once via FromSample or FromExplicit.
type TilingAnalysis[T comparable] struct {
	directionSpace *core.MultiSpace
	directions     []core.MultiVector // non-zero directions, cached

	rules map[ruleKey[T]]struct{}

	tileOrder []T
	weights   map[T]tileWeight
	total     tileWeight
	maxEnt    float64

	adjIndex map[adjIndexKey[T]]int
}

// DirectionSpace returns the {-1,0,1}-bounded space direction offsets are
// drawn from.
func (a *TilingAnalysis[T]) DirectionSpace() *core.MultiSpace { return a.directionSpace }

// NonZeroDirections returns every non-origin point of the direction space,
// in a fixed (ForEachPoint) order. Implementations never need to visit the
// zero direction: no rule has a zero direction.
func (a *TilingAnalysis[T]) NonZeroDirections() []core.MultiVector { return a.directions }

// TileOrder returns every tile with non-zero weight, in the analysis's
// canonical deterministic order (first-seen order for FromSample; the
// order of the TileCount slice for FromExplicit).
func (a *TilingAnalysis[T]) TileOrder() []T { return a.tileOrder }

// Weight returns tile's (weight, weight*ln(weight)) pair and whether the
// tile is known to this analysis.
func (a *TilingAnalysis[T]) Weight(tile T) (weight, weightLogWeight float64, ok bool) {
	w, ok := a.weights[tile]

	return w.w, w.wlogw, ok
}

// TotalWeight returns (Σw, Σ w·ln(w)) over every tile in the analysis.
func (a *TilingAnalysis[T]) TotalWeight() (weight, weightLogWeight float64) {
	return a.total.w, a.total.wlogw
}

// MaxEntropy returns the Shannon entropy of the full tile multiset:
// ln(Σw) - (Σ w·ln(w))/Σw.
func (a *TilingAnalysis[T]) MaxEntropy() float64 { return a.maxEnt }

// Contains reports whether rule r is a member of the rule set. Backed by
// a hash map, this is amortized O(1).
func (a *TilingAnalysis[T]) Contains(r TilingRule[T]) bool {
	_, ok := a.rules[r.key()]

	return ok
}

// AdjacencyCount returns the number of rules with Adjacent == tile and
// Direction == direction — the quantity TileEnablement's initial counters
// are built from.
func (a *TilingAnalysis[T]) AdjacencyCount(tile T, direction core.MultiVector) int {
	return a.adjIndex[adjIndexKey[T]{adjacent: tile, dir: direction.Key()}]
}

// buildDirectionSpace derives the {-1,0,1}-per-axis direction space from
// a sample/output space: clamp each axis range to {-1,0,1}, collapsing
// to 0 on any axis where the input space is degenerate (range == 1).
func buildDirectionSpace(space *core.MultiSpace) (*core.MultiSpace, error) {
	n := space.DimensionCount()
	min := make([]int, n)
	max := make([]int, n)
	periodic := make([]bool, n)
	for d := 0; d < n; d++ {
		periodic[d] = space.Periodic(d)
		if space.Range(d) <= 1 {
			min[d], max[d] = 0, 0
			continue
		}
		min[d], max[d] = -1, 1
	}

	return core.NewMultiSpace(core.NewMultiVector(min...), core.NewMultiVector(max...), periodic)
}

func nonZeroPoints(space *core.MultiSpace) ([]core.MultiVector, error) {
	var out []core.MultiVector
	err := space.ForEachPoint(func(c core.MultiVector) error {
		if !c.IsZero() {
			out = append(out, c)
		}
		return nil
	})

	return out, err
}

// FromSample builds a TilingAnalysis by scanning every point of sample's
// space: counting tile frequencies and recording a rule (plus its
// automatic inverse) for every present adjacent pair along every
// non-zero direction.
func FromSample[T comparable](sample Sample[T]) (*TilingAnalysis[T], error) {
	space := sample.Space()
	dirSpace, err := buildDirectionSpace(space)
	if err != nil {
		return nil, err
	}
	directions, err := nonZeroPoints(dirSpace)
	if err != nil {
		return nil, err
	}

	counts := map[T]int{}
	var order []T
	ruleSet := map[ruleKey[T]]struct{}{}
	var rules []TilingRule[T]

	addRule := func(r TilingRule[T]) {
		k := r.key()
		if _, seen := ruleSet[k]; seen {
			return
		}
		ruleSet[k] = struct{}{}
		rules = append(rules, r)
	}

	err = space.ForEachPoint(func(c core.MultiVector) error {
		tile, ok := sample.At(c)
		if !ok {
			return nil
		}
		if _, seen := counts[tile]; !seen {
			order = append(order, tile)
		}
		counts[tile]++

		for _, d := range directions {
			shifted, addErr := c.Add(d)
			if addErr != nil {
				return fmt.Errorf("tiling: FromSample: %w", addErr)
			}
			cAdj, simErr := space.Simplify(shifted)
			if simErr != nil {
				return fmt.Errorf("tiling: FromSample: %w", simErr)
			}
			if !space.InBounds(cAdj) {
				continue
			}
			adjTile, ok2 := sample.At(cAdj)
			if !ok2 {
				continue
			}
			addRule(NewTilingRule(tile, adjTile, d))
			addRule(NewTilingRule(adjTile, tile, d.Negate()))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, ErrEmptySample
	}

	return buildAnalysis(dirSpace, directions, rules, order, counts)
}

// FromExplicitOption configures FromExplicit's construction: a closure
// over a private config, resolved before any rule validation happens.
type FromExplicitOption[T comparable] func(*explicitConfig[T])

type explicitConfig[T comparable] struct {
	addInverses bool
}

// WithAutomaticInverses makes FromExplicit add each rule's Inverse() to
// the rule set automatically, matching FromSample's policy. By default
// no inverse is added — the caller is responsible for supplying both
// directions if that is semantically desired.
func WithAutomaticInverses[T comparable]() FromExplicitOption[T] {
	return func(cfg *explicitConfig[T]) { cfg.addInverses = true }
}

// FromExplicit builds a TilingAnalysis directly from a caller-supplied
// rule list and tile-weight list. Every rule's Direction must match
// space's dimension count, or ErrDimensionMismatch is returned. Unlike
// FromSample, no automatic inverse is added unless WithAutomaticInverses
// is passed.
func FromExplicit[T comparable](space *core.MultiSpace, rules []TilingRule[T], tileCounts []TileCount[T], opts ...FromExplicitOption[T]) (*TilingAnalysis[T], error) {
	cfg := &explicitConfig[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	dirSpace, err := buildDirectionSpace(space)
	if err != nil {
		return nil, err
	}
	directions, err := nonZeroPoints(dirSpace)
	if err != nil {
		return nil, err
	}

	counts := map[T]int{}
	var order []T
	for _, tc := range tileCounts {
		if _, dup := counts[tc.Tile]; dup {
			return nil, fmt.Errorf("tiling: FromExplicit: tile %v: %w", tc.Tile, ErrDuplicateTileCount)
		}
		if tc.Weight <= 0 {
			return nil, fmt.Errorf("tiling: FromExplicit: tile %v: %w", tc.Tile, ErrNonPositiveWeight)
		}
		counts[tc.Tile] = tc.Weight
		order = append(order, tc.Tile)
	}

	ruleSet := map[ruleKey[T]]struct{}{}
	var deduped []TilingRule[T]
	addRule := func(r TilingRule[T]) {
		k := r.key()
		if _, seen := ruleSet[k]; seen {
			return
		}
		ruleSet[k] = struct{}{}
		deduped = append(deduped, r)
	}

	for _, r := range rules {
		if r.Direction.Dim() != dirSpace.DimensionCount() {
			return nil, fmt.Errorf("tiling: FromExplicit: rule direction dim %d != space dim %d: %w",
				r.Direction.Dim(), dirSpace.DimensionCount(), ErrDimensionMismatch)
		}
		addRule(r)
		if cfg.addInverses {
			addRule(r.Inverse())
		}
	}

	return buildAnalysis(dirSpace, directions, deduped, order, counts)
}

func buildAnalysis[T comparable](dirSpace *core.MultiSpace, directions []core.MultiVector, rules []TilingRule[T], order []T, counts map[T]int) (*TilingAnalysis[T], error) {
	weights := make(map[T]tileWeight, len(order))
	var total tileWeight
	for _, tile := range order {
		wt := weightOf(counts[tile])
		weights[tile] = wt
		total = total.add(wt)
	}

	ruleSet := make(map[ruleKey[T]]struct{}, len(rules))
	adjIndex := make(map[adjIndexKey[T]]int, len(rules))
	for _, r := range rules {
		ruleSet[r.key()] = struct{}{}
		adjIndex[adjIndexKey[T]{adjacent: r.Adjacent, dir: r.Direction.Key()}]++
	}

	return &TilingAnalysis[T]{
		directionSpace: dirSpace,
		directions:     directions,
		rules:          ruleSet,
		tileOrder:      order,
		weights:        weights,
		total:          total,
		maxEnt:         total.entropy(),
		adjIndex:       adjIndex,
	}, nil
}
