package core

import "fmt"

// MultiArray is dense storage of exactly space.PointCount() values of type
// V, keyed by coordinates in space. Unlike MultiDict, every coordinate in
// the space always holds a value (the zero value of V until set).
type MultiArray[V any] struct {
	space *MultiSpace
	data  []V
}

// NewMultiArray allocates a MultiArray over space with every value set to
// the zero value of V.
func NewMultiArray[V any](space *MultiSpace) *MultiArray[V] {
	return &MultiArray[V]{space: space, data: make([]V, space.PointCount())}
}

// NewMultiArrayFill allocates a MultiArray over space, calling fill() once
// per point (in canonical enumeration order) to produce its initial value.
func NewMultiArrayFill[V any](space *MultiSpace, fill func() V) *MultiArray[V] {
	data := make([]V, space.PointCount())
	for i := range data {
		data[i] = fill()
	}

	return &MultiArray[V]{space: space, data: data}
}

// NewMultiArrayFillCoords allocates a MultiArray over space, calling
// fill(c) once per point to produce its initial value from that point's
// coordinate.
func NewMultiArrayFillCoords[V any](space *MultiSpace, fill func(c MultiVector) V) *MultiArray[V] {
	data := make([]V, space.PointCount())
	for i := range data {
		c, err := space.Coords(i)
		if err != nil {
			// i ranges over [0, PointCount) by construction; Coords cannot fail here.
			panic(fmt.Sprintf("core: NewMultiArrayFillCoords: unreachable: %v", err))
		}
		data[i] = fill(c)
	}

	return &MultiArray[V]{space: space, data: data}
}

// NewMultiArrayFromSlice builds a MultiArray over space from values given
// in the space's canonical enumeration order. Returns ErrDimensionMismatch
// if len(values) != space.PointCount().
func NewMultiArrayFromSlice[V any](space *MultiSpace, values []V) (*MultiArray[V], error) {
	if len(values) != space.PointCount() {
		return nil, fmt.Errorf("core: NewMultiArrayFromSlice: got %d values, want %d: %w",
			len(values), space.PointCount(), ErrDimensionMismatch)
	}
	data := make([]V, len(values))
	copy(data, values)

	return &MultiArray[V]{space: space, data: data}, nil
}

// CopyMultiArray deep-copies src into a new MultiArray over the same space.
func CopyMultiArray[V any](src *MultiArray[V]) *MultiArray[V] {
	data := make([]V, len(src.data))
	copy(data, src.data)

	return &MultiArray[V]{space: src.space, data: data}
}

// Space returns the MultiSpace this array is defined over.
func (a *MultiArray[V]) Space() *MultiSpace { return a.space }

// Get returns the value stored at c.
func (a *MultiArray[V]) Get(c MultiVector) (V, error) {
	var zero V
	idx, err := a.space.FlatIndex(c)
	if err != nil {
		return zero, err
	}

	return a.data[idx], nil
}

// Set stores v at c.
func (a *MultiArray[V]) Set(c MultiVector, v V) error {
	idx, err := a.space.FlatIndex(c)
	if err != nil {
		return err
	}
	a.data[idx] = v

	return nil
}

// At is equivalent to Get, but exists so MultiArray[T] satisfies the
// tiling.Sample[T] interface (Space() plus At(c) (T, bool)); ok is always
// true for a coordinate inside [min, max] on every axis since MultiArray is
// dense, and false for any other coordinate (periodic axes are not wrapped).
func (a *MultiArray[V]) At(c MultiVector) (V, bool) {
	v, err := a.Get(c)
	if err != nil {
		var zero V
		return zero, false
	}

	return v, true
}
