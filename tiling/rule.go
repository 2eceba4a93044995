package tiling

import "github.com/nd-wfc/wfc/core"

// TilingRule is a directed adjacency fact: Origin may appear with Adjacent
// placed Direction away from it. Equality is structural (Origin, Adjacent,
// and Direction all compare equal).
type TilingRule[T comparable] struct {
	Origin, Adjacent T
	Direction        core.MultiVector
}

// NewTilingRule builds a TilingRule. Direction should be non-zero and a
// member of the enclosing TilingAnalysis's direction space — that
// membership is enforced by the analysis, not by this constructor.
func NewTilingRule[T comparable](origin, adjacent T, direction core.MultiVector) TilingRule[T] {
	return TilingRule[T]{Origin: origin, Adjacent: adjacent, Direction: direction}
}

// Inverse returns (Adjacent, Origin, -Direction): the same adjacency fact
// read from the other tile's point of view.
func (r TilingRule[T]) Inverse() TilingRule[T] {
	return TilingRule[T]{Origin: r.Adjacent, Adjacent: r.Origin, Direction: r.Direction.Negate()}
}

// Equal reports structural equality between two rules.
func (r TilingRule[T]) Equal(other TilingRule[T]) bool {
	return r.Origin == other.Origin && r.Adjacent == other.Adjacent && r.Direction.Equal(other.Direction)
}

// key returns a canonical comparable key for r, used to back the
// TilingAnalysis rule set with a plain Go map (MultiVector is not itself
// comparable, so Direction is folded through MultiVector.Key()).
func (r TilingRule[T]) key() ruleKey[T] {
	return ruleKey[T]{origin: r.Origin, adjacent: r.Adjacent, dir: r.Direction.Key()}
}

type ruleKey[T comparable] struct {
	origin, adjacent T
	dir              string
}

// adjIndexKey indexes rules by (Adjacent, Direction) alone, the shape
// TileEnablement initialization scans: "the number of rules r with
// r.adjacent == t and r.direction == -d".
type adjIndexKey[T comparable] struct {
	adjacent T
	dir      string
}
