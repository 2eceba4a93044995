package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nd-wfc/wfc/core"
)

func TestMultiDict_AbsentByDefault(t *testing.T) {
	s := mustSpace(t, core.NewMultiVector(0), core.NewMultiVector(4), []bool{false})
	d := core.NewMultiDict[string](s)

	v, err := d.Get(core.NewMultiVector(1))
	require.NoError(t, err)
	require.Equal(t, "", v)
	require.False(t, d.Has(core.NewMultiVector(1)))

	_, ok := d.At(core.NewMultiVector(1))
	require.False(t, ok)
}

func TestMultiDict_SetAndRemoveViaSentinel(t *testing.T) {
	s := mustSpace(t, core.NewMultiVector(0), core.NewMultiVector(4), []bool{false})
	d := core.NewMultiDict[string](s)

	c := core.NewMultiVector(2)
	require.NoError(t, d.Set(c, "A"))
	require.True(t, d.Has(c))
	require.Equal(t, 1, d.Len())

	v, ok := d.At(c)
	require.True(t, ok)
	require.Equal(t, "A", v)

	// Writing the zero-value sentinel removes the entry.
	require.NoError(t, d.Set(c, ""))
	require.False(t, d.Has(c))
	require.Equal(t, 0, d.Len())
}

func TestMultiDict_DimensionMismatch(t *testing.T) {
	s := mustSpace(t, core.NewMultiVector(0), core.NewMultiVector(4), []bool{false})
	d := core.NewMultiDict[int](s)

	_, err := d.Get(core.NewMultiVector(0, 0))
	require.ErrorIs(t, err, core.ErrDimensionMismatch)

	err = d.Set(core.NewMultiVector(0, 0), 1)
	require.ErrorIs(t, err, core.ErrDimensionMismatch)
}
