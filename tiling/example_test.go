package tiling_test

import (
	"fmt"

	"github.com/nd-wfc/wfc/core"
	"github.com/nd-wfc/wfc/tiling"
)

// ExampleFromSample learns adjacency rules from a checkerboard sample.
func ExampleFromSample() {
	space, _ := core.NewMultiSpace(core.NewMultiVector(0, 0), core.NewMultiVector(1, 1), []bool{false, false})
	sample, _ := core.NewMultiArrayFromSlice(space, []string{"A", "B", "B", "A"})

	analysis, err := tiling.FromSample[string](sample)
	if err != nil {
		panic(err)
	}

	right := core.NewMultiVector(0, 1)
	fmt.Println(analysis.Contains(tiling.NewTilingRule("A", "B", right)))
	fmt.Println(analysis.Contains(tiling.NewTilingRule("A", "A", right)))
	// Output:
	// true
	// false
}
