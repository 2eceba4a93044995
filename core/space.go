package core

import (
	"errors"
	"fmt"
)

// ErrRangeInverted indicates a MultiSpace axis where min[d] > max[d].
var ErrRangeInverted = errors.New("core: range inverted (min > max on some axis)")

// ErrOutOfRange indicates a coordinate or flat index fell outside the
// space it was asked to address.
var ErrOutOfRange = errors.New("core: coordinate out of range")

// MultiSpace is an axis-aligned box in ℤⁿ, bounded by min/max (inclusive
// on both ends), with independent periodicity per axis. It is immutable
// once built: ranges, point_count, and strides are derived once at
// construction and memoized.
//
// Periodicity: a periodic axis wraps — Simplify folds any integer into
// [min[d], max[d]] via true mathematical modulo. A non-periodic axis is
// passed through unchanged by Simplify; InBounds is what rejects
// out-of-range coordinates on that axis.
type MultiSpace struct {
	min, max MultiVector
	periodic []bool

	ranges     []int // max[d] - min[d] + 1
	strides    []int // row-major strides, last axis innermost
	pointCount int
}

// NewMultiSpace validates and constructs a MultiSpace.
//
// Errors:
//   - ErrDimensionMismatch if len(min) != len(max) != len(periodic).
//   - ErrRangeInverted if min[d] > max[d] for any axis.
//
// Complexity: O(n) where n is the dimension count.
func NewMultiSpace(min, max MultiVector, periodic []bool) (*MultiSpace, error) {
	if min.Dim() != max.Dim() || min.Dim() != len(periodic) {
		return nil, fmt.Errorf("core: NewMultiSpace: min=%d max=%d periodic=%d: %w",
			min.Dim(), max.Dim(), len(periodic), ErrDimensionMismatch)
	}

	n := min.Dim()
	ranges := make([]int, n)
	for d := 0; d < n; d++ {
		if min.At(d) > max.At(d) {
			return nil, fmt.Errorf("core: NewMultiSpace: axis %d min=%d > max=%d: %w",
				d, min.At(d), max.At(d), ErrRangeInverted)
		}
		ranges[d] = max.At(d) - min.At(d) + 1
	}

	strides := make([]int, n)
	acc := 1
	for d := n - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= ranges[d]
	}

	per := make([]bool, n)
	copy(per, periodic)

	return &MultiSpace{
		min:        min,
		max:        max,
		periodic:   per,
		ranges:     ranges,
		strides:    strides,
		pointCount: acc,
	}, nil
}

// DimensionCount returns the space's dimension count.
func (s *MultiSpace) DimensionCount() int { return s.min.Dim() }

// Min returns the inclusive lower bound.
func (s *MultiSpace) Min() MultiVector { return s.min }

// Max returns the inclusive upper bound.
func (s *MultiSpace) Max() MultiVector { return s.max }

// Periodic reports whether axis d wraps.
func (s *MultiSpace) Periodic(d int) bool { return s.periodic[d] }

// Range returns max[d] - min[d] + 1, the number of distinct coordinate
// values along axis d.
func (s *MultiSpace) Range(d int) int { return s.ranges[d] }

// PointCount returns the total number of addressable points, Π ranges[d].
func (s *MultiSpace) PointCount() int { return s.pointCount }

// InBounds reports whether c has matching dimensionality and, for every
// non-periodic axis, min[d] <= c[d] <= max[d]. Periodic axes accept any
// integer value.
func (s *MultiSpace) InBounds(c MultiVector) bool {
	if c.Dim() != s.DimensionCount() {
		return false
	}
	for d := 0; d < s.DimensionCount(); d++ {
		if s.periodic[d] {
			continue
		}
		if c.At(d) < s.min.At(d) || c.At(d) > s.max.At(d) {
			return false
		}
	}

	return true
}

// Simplify folds c into canonical form: periodic axes are wrapped into
// [min[d], max[d]] using true mathematical modulo (result always
// non-negative relative to min); non-periodic axes pass through
// unmodified. Callers must still check InBounds separately for
// non-periodic axes, since Simplify never rejects an out-of-range
// coordinate on those axes.
//
// Errors: ErrDimensionMismatch if c.Dim() != s.DimensionCount().
func (s *MultiSpace) Simplify(c MultiVector) (MultiVector, error) {
	if c.Dim() != s.DimensionCount() {
		return MultiVector{}, fmt.Errorf("core: Simplify: coord dim %d != space dim %d: %w",
			c.Dim(), s.DimensionCount(), ErrDimensionMismatch)
	}

	out := make([]int, s.DimensionCount())
	for d := 0; d < s.DimensionCount(); d++ {
		if !s.periodic[d] {
			out[d] = c.At(d)
			continue
		}
		// True mathematical modulo: ((x - min) mod range + range) mod range + min.
		rel := c.At(d) - s.min.At(d)
		r := s.ranges[d]
		m := rel % r
		if m < 0 {
			m += r
		}
		out[d] = m + s.min.At(d)
	}

	return MultiVector{components: out}, nil
}

// FlatIndex maps an in-range coordinate to its position in [0, PointCount)
// using the space's row-major strides (first axis slowest, last axis
// fastest). c must already lie in [min[d], max[d]] on every axis; use
// Simplify first if it might need wrapping.
//
// Errors: ErrDimensionMismatch, or ErrOutOfRange if any component of c lies
// outside [min[d], max[d]], periodic axes included.
func (s *MultiSpace) FlatIndex(c MultiVector) (int, error) {
	if c.Dim() != s.DimensionCount() {
		return 0, fmt.Errorf("core: FlatIndex: coord dim %d != space dim %d: %w",
			c.Dim(), s.DimensionCount(), ErrDimensionMismatch)
	}
	for d := 0; d < s.DimensionCount(); d++ {
		if c.At(d) < s.min.At(d) || c.At(d) > s.max.At(d) {
			return 0, fmt.Errorf("core: FlatIndex: %v: %w", c, ErrOutOfRange)
		}
	}

	idx := 0
	for d := 0; d < s.DimensionCount(); d++ {
		idx += (c.At(d) - s.min.At(d)) * s.strides[d]
	}

	return idx, nil
}

// Coords decodes a flat index in [0, PointCount) back to its coordinate,
// by successive div/mod over the strides, first axis first. Coords and
// FlatIndex are mutual inverses over the space's addressable range.
//
// Errors: ErrOutOfRange if i is not in [0, PointCount).
func (s *MultiSpace) Coords(i int) (MultiVector, error) {
	if i < 0 || i >= s.pointCount {
		return MultiVector{}, fmt.Errorf("core: Coords: index %d not in [0,%d): %w", i, s.pointCount, ErrOutOfRange)
	}

	out := make([]int, s.DimensionCount())
	rem := i
	for d := 0; d < s.DimensionCount(); d++ {
		out[d] = rem/s.strides[d] + s.min.At(d)
		rem %= s.strides[d]
	}

	return MultiVector{components: out}, nil
}

// ForEachPoint enumerates every point in the space, in the canonical
// enumeration order (first axis varies slowest, last axis fastest — the
// same order MultiArray's flat-sequence constructor assumes). If fn
// returns an error, enumeration stops immediately and that error is
// returned.
//
// This order is a public contract: MultiArray's "from a flat sequence"
// constructor and the TilingAnalysis sample scan both rely on it.
//
// Complexity: O(PointCount * DimensionCount).
func (s *MultiSpace) ForEachPoint(fn func(c MultiVector) error) error {
	for i := 0; i < s.pointCount; i++ {
		c, err := s.Coords(i)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}

	return nil
}
