package wave_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nd-wfc/wfc/core"
	"github.com/nd-wfc/wfc/tiling"
	"github.com/nd-wfc/wfc/wave"
)

func alternationSpace(t *testing.T, length int, periodic bool) *core.MultiSpace {
	t.Helper()
	s, err := core.NewMultiSpace(core.NewMultiVector(0), core.NewMultiVector(length-1), []bool{periodic})
	require.NoError(t, err)

	return s
}

func alternationAnalysis(t *testing.T) *tiling.TilingAnalysis[string] {
	t.Helper()
	sample, err := core.NewMultiArrayFromSlice(alternationSpace(t, 6, true), []string{"A", "B", "A", "B", "A", "B"})
	require.NoError(t, err)
	analysis, err := tiling.FromSample[string](sample)
	require.NoError(t, err)

	return analysis
}

// TestRun_CompletesAlternatingPattern exercises a full unseeded run:
// learning a periodic alternation and running on a matching-length output
// space must terminate successfully with every cell collapsed, and every
// adjacent pair in the result must be a known rule.
func TestRun_CompletesAlternatingPattern(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	result, err := wf.Run(wave.NewMathRand(7))
	require.NoError(t, err)

	err = outputSpace.ForEachPoint(func(c core.MultiVector) error {
		node, getErr := result.Get(c)
		require.NoError(t, getErr)
		require.False(t, node.Unresolvable())
		_, ok := node.CollapsedTile()
		require.True(t, ok, "cell %v did not collapse", c)

		return nil
	})
	require.NoError(t, err)

	for _, d := range analysis.NonZeroDirections() {
		err = outputSpace.ForEachPoint(func(c core.MultiVector) error {
			node, _ := result.Get(c)
			tile, _ := node.CollapsedTile()
			shifted, addErr := c.Add(d)
			require.NoError(t, addErr)
			cAdj, simErr := outputSpace.Simplify(shifted)
			require.NoError(t, simErr)
			adjNode, getErr := result.Get(cAdj)
			require.NoError(t, getErr)
			adjTile, _ := adjNode.CollapsedTile()
			require.True(t, analysis.Contains(tiling.NewTilingRule(tile, adjTile, d)),
				"cell %v=%s adjacent %v=%s along %v is not a known rule", c, tile, cAdj, adjTile, d)

			return nil
		})
		require.NoError(t, err)
	}
}

// TestRun_DeterministicForSameSeed covers reproducibility: two runs
// with the same analysis, output space, options, and seed produce an
// identical terminal wave.
func TestRun_DeterministicForSameSeed(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	first, err := wf.Run(wave.NewMathRand(42))
	require.NoError(t, err)
	second, err := wf.Run(wave.NewMathRand(42))
	require.NoError(t, err)

	err = outputSpace.ForEachPoint(func(c core.MultiVector) error {
		a, _ := first.Get(c)
		b, _ := second.Get(c)
		ta, _ := a.CollapsedTile()
		tb, _ := b.CollapsedTile()
		require.Equal(t, ta, tb, "mismatch at %v", c)

		return nil
	})
	require.NoError(t, err)
}

// TestRun_DeterministicForSameSeed_ExpRand is TestRun_DeterministicForSameSeed's
// counterpart for the golang.org/x/exp/rand-backed adapter: two runs with
// the same analysis, output space, options, and seed produce an
// identical terminal wave regardless of which RNG implementation drives
// them.
func TestRun_DeterministicForSameSeed_ExpRand(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	first, err := wf.Run(wave.NewExpRand(42))
	require.NoError(t, err)
	second, err := wf.Run(wave.NewExpRand(42))
	require.NoError(t, err)

	err = outputSpace.ForEachPoint(func(c core.MultiVector) error {
		a, _ := first.Get(c)
		b, _ := second.Get(c)
		ta, _ := a.CollapsedTile()
		tb, _ := b.CollapsedTile()
		require.Equal(t, ta, tb, "mismatch at %v", c)

		return nil
	})
	require.NoError(t, err)
}

// TestRun_PredeterminedTileIsRespected is scenario S6: seeding a cell with
// WithPredeterminedTiles forces that cell's final tile.
func TestRun_PredeterminedTileIsRespected(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	origin := core.NewMultiVector(0)
	result, err := wf.Run(wave.NewMathRand(3), wave.WithPredeterminedTiles([]wave.PredeterminedTile[string]{
		{Coord: origin, Tile: "A"},
	}))
	require.NoError(t, err)

	node, err := result.Get(origin)
	require.NoError(t, err)
	tile, ok := node.CollapsedTile()
	require.True(t, ok)
	require.Equal(t, "A", tile)
}

// TestRun_PredeterminedBanCausingContradiction is scenario S4: banning
// every possibility at a single cell must surface as ErrContradiction, not
// as a silently successful run.
func TestRun_PredeterminedBanCausingContradiction(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	origin := core.NewMultiVector(0)
	_, err = wf.Run(wave.NewMathRand(5), wave.WithPredeterminedBans([]wave.PredeterminedBan[string]{
		{Coord: origin, Tile: "A"},
		{Coord: origin, Tile: "B"},
	}))
	require.ErrorIs(t, err, wave.ErrContradiction)
}

// TestRun_OutOfBoundsPredeterminedCoordIsIgnored covers out-of-bounds
// handling: a predetermined coordinate outside a non-periodic output space
// is silently ignored, not an error.
func TestRun_OutOfBoundsPredeterminedCoordIsIgnored(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, false)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	outOfBounds := core.NewMultiVector(99)
	result, err := wf.Run(wave.NewMathRand(11), wave.WithPredeterminedTiles([]wave.PredeterminedTile[string]{
		{Coord: outOfBounds, Tile: "A"},
	}))
	require.NoError(t, err)
	require.Equal(t, outputSpace.PointCount(), result.Space().PointCount())
}

// TestRun_OnCollapseAndOnBanHooksFire checks the observability hooks fire
// and counts how often OnCollapse is invoked.
func TestRun_OnCollapseAndOnBanHooksFire(t *testing.T) {
	analysis := alternationAnalysis(t)
	outputSpace := alternationSpace(t, 6, true)

	wf, err := wave.New[string](outputSpace, analysis)
	require.NoError(t, err)

	var collapses, bans int
	_, err = wf.Run(wave.NewMathRand(9),
		wave.WithOnCollapse(func(core.MultiVector, string) { collapses++ }),
		wave.WithOnBan(func(core.MultiVector, string) { bans++ }),
	)
	require.NoError(t, err)

	// The alternation analysis is fully rigid: one observe on cell 0
	// propagates via Ban into every other cell, so OnCollapse fires once,
	// not once per cell.
	require.Equal(t, 1, collapses)
	require.Greater(t, bans, 0)
}

func TestNew_DimensionMismatch(t *testing.T) {
	analysis := alternationAnalysis(t)
	space2D, err := core.NewMultiSpace(core.NewMultiVector(0, 0), core.NewMultiVector(2, 2), []bool{false, false})
	require.NoError(t, err)

	_, err = wave.New[string](space2D, analysis)
	require.ErrorIs(t, err, wave.ErrDimensionMismatch)
}
