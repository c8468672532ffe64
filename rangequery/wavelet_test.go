package rangequery_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/rangequery"
)

// literalTree builds the tree of the reference sequence
// [(2,3),(1,4),(4,1),(2,2),(3,1),(0,4)] as a single batch.
func literalTree() *rangequery.WeightedWaveletTree {
	var w rangequery.WeightedWaveletTree
	for _, e := range [][2]int64{{2, 3}, {1, 4}, {4, 1}, {2, 2}, {3, 1}, {0, 4}} {
		w.PushBack(e[0], e[1])
	}
	w.MakeTreeFromNewElements()
	return &w
}

func TestWeightedWaveletTree_Literal(t *testing.T) {
	w := literalTree()
	require.Equal(t, 6, w.TreeSize())
	require.Equal(t, int64(15), w.RangeSumWithThreshold(0, 0, 6))
	require.Equal(t, int64(2), w.RangeSumWithThreshold(3, 1, 5))
}

func TestWeightedWaveletTree_InfiniteThresholds(t *testing.T) {
	w := literalTree()
	weights := []int64{3, 4, 1, 2, 1, 4}
	for b := 0; b <= 6; b++ {
		for e := b; e <= 6; e++ {
			var plain int64
			for i := b; i < e; i++ {
				plain += weights[i]
			}
			require.Equal(t, plain, w.RangeSumWithThreshold(math.MinInt64, b, e), "[%d,%d)", b, e)
			require.Zero(t, w.RangeSumWithThreshold(math.MaxInt64, b, e), "[%d,%d)", b, e)
		}
	}
}

func TestWeightedWaveletTree_BruteForceAcrossBatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var (
		w       rangequery.WeightedWaveletTree
		heights []int64
		weights []int64
		batches [][2]int
	)
	for b := 0; b < 12; b++ {
		size := rng.Intn(40) // empty batches are allowed
		begin := len(heights)
		for i := 0; i < size; i++ {
			h := int64(rng.Intn(9) - 4)
			x := int64(rng.Intn(100) - 20)
			w.PushBack(h, x)
			heights = append(heights, h)
			weights = append(weights, x)
		}
		w.MakeTreeFromNewElements()
		batches = append(batches, [2]int{begin, len(heights)})
	}
	require.Equal(t, len(heights), w.TreeSize())

	for _, bt := range batches {
		for q := 0; q < 60; q++ {
			if bt[1] == bt[0] {
				break
			}
			b := bt[0] + rng.Intn(bt[1]-bt[0])
			e := b + rng.Intn(bt[1]-b+1)
			th := int64(rng.Intn(13) - 6)
			var want int64
			for i := b; i < e; i++ {
				if heights[i] >= th {
					want += weights[i]
				}
			}
			require.Equal(t, want, w.RangeSumWithThreshold(th, b, e), "th=%d [%d,%d)", th, b, e)
		}
	}
}

func TestWeightedWaveletTree_SingleHeight(t *testing.T) {
	var w rangequery.WeightedWaveletTree
	for i := 0; i < 5; i++ {
		w.PushBack(7, int64(i))
	}
	w.MakeTreeFromNewElements()
	require.Equal(t, int64(10), w.RangeSumWithThreshold(7, 0, 5))
	require.Zero(t, w.RangeSumWithThreshold(8, 0, 5))
	require.Equal(t, int64(5), w.RangeSumWithThreshold(-1, 2, 4))
}

func TestWeightedWaveletTree_Misuse(t *testing.T) {
	w := literalTree()
	w.PushBack(1, 1)
	w.PushBack(2, 2)
	w.MakeTreeFromNewElements()

	require.Panics(t, func() { w.RangeSumWithThreshold(0, 5, 7) }, "straddles two trees")
	require.Panics(t, func() { w.RangeSumWithThreshold(0, 0, 9) }, "out of bounds")

	w.PushBack(3, 3)
	require.Panics(t, func() { w.RangeSumWithThreshold(0, 8, 9) }, "not built yet")
	require.Zero(t, w.RangeSumWithThreshold(0, 8, 8))
}

func TestWeightedWaveletTree_ClearAndReuse(t *testing.T) {
	w := literalTree()
	w.Clear()
	require.Zero(t, w.TreeSize())

	w.PushBack(5, 10)
	w.PushBack(1, 1)
	w.MakeTreeFromNewElements()
	require.Equal(t, int64(10), w.RangeSumWithThreshold(2, 0, 2))
}
