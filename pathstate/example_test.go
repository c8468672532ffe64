// Package pathstate_test shows one change / commit cycle.
package pathstate_test

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvroute/pathstate"
)

// ExamplePathState inserts loop node 4 between the start and the end of
// path 0, then commits.
func ExamplePathState() {
	ps, err := pathstate.New(5, []int{0, 2}, []int{1, 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var (
		r    = ps.CommittedPathRange(0)
		loop = ps.CommittedIndex(4)
	)
	ps.ChangePath(0,
		pathstate.ChainBounds{Begin: r.Begin, End: r.Begin + 1},
		pathstate.ChainBounds{Begin: loop, End: loop + 1},
		pathstate.ChainBounds{Begin: r.Begin + 1, End: r.End},
	)
	fmt.Println(slices.Collect(ps.Nodes(0)), ps.ChangedPaths(), ps.Path(4))

	ps.Commit()
	fmt.Println(slices.Collect(ps.Nodes(0)), len(ps.ChangedPaths()), ps.CommittedPath(4))
	// Output:
	// [0 4 1] [0] 0
	// [0 4 1] 0 0
}
