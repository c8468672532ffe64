// Package rangequery - weighted wavelet tree.
//
// WeightedWaveletTree stores (height, weight) elements in push order and
// answers RangeSumWithThreshold(threshold, begin, end): the sum of weights of
// elements in [begin, end) whose height is ≥ threshold.
//
// Structure of one tree (one batch):
//   - The distinct heights of the batch, sorted, are split recursively:
//     a node covering heights vals[lo..hi] sends heights < vals[mid] to its
//     left child and the others to its right child, mid = ⌈(lo+hi)/2⌉.
//   - Layer d is the batch reordered so that every depth-d node owns a
//     contiguous range (a stable partition of the layer above).
//   - For every layer position we record the prefix sum of weights and the
//     number of left-routed elements before it, so a range inside a node maps
//     to its range inside either child in O(1).
//
// Query: descend from the root; when the threshold is ≤ the node's smallest
// height the whole range counts, when it is > the largest nothing does;
// otherwise either the right child counts entirely and we descend left, or we
// descend right only.
//
// Complexity:
//   - MakeTreeFromNewElements: O(b log b) for a batch of b elements (sort),
//     then O(b · log(distinct heights)) for the layers.
//   - RangeSumWithThreshold: O(log(distinct heights)) plus O(log #trees) to
//     locate the batch.
//   - Memory: O(b · log(distinct heights)).
package rangequery

import (
	"slices"
	"sort"
)

// WeightedWaveletTree answers threshold range sums over append-only batches.
type WeightedWaveletTree struct {
	elements []waveletElement
	trees    []waveletTree // ordered by begin; one per non-empty batch
	built    int           // number of elements covered by trees
}

type waveletElement struct {
	height int64
	weight int64
}

// elementInfo is the per-position record of one layer.
type elementInfo struct {
	prefixSum  int64 // Σ weights strictly before this position in the layer
	leftBefore int   // left-routed elements strictly before this position in the layer
}

type waveletNode struct {
	minHeight, maxHeight int64
	pivot                int64 // heights < pivot route left
	begin, end           int   // tree-relative positions in layers[depth]
	depth                int
	left, right          int // children; -1 for leaves
}

type waveletTree struct {
	begin, end int
	layers     [][]elementInfo // each of length end-begin+1
	nodes      []waveletNode   // nodes[0] is the root
}

// PushBack appends an element to the pending batch.
func (w *WeightedWaveletTree) PushBack(height, weight int64) {
	w.elements = append(w.elements, waveletElement{height: height, weight: weight})
}

// TreeSize returns the number of elements already organised into trees.
func (w *WeightedWaveletTree) TreeSize() int {
	return w.built
}

// Clear removes all elements and trees; previously issued ranges become invalid.
func (w *WeightedWaveletTree) Clear() {
	w.elements = w.elements[:0]
	w.trees = w.trees[:0]
	w.built = 0
}

// MakeTreeFromNewElements builds one immutable tree over the elements pushed
// since the previous call. An empty batch builds nothing.
func (w *WeightedWaveletTree) MakeTreeFromNewElements() {
	var (
		begin = w.built
		end   = len(w.elements)
		n     = end - begin
	)
	if n == 0 {
		return
	}
	batch := w.elements[begin:end]

	// Distinct sorted heights.
	vals := make([]int64, n)
	for i := range batch {
		vals[i] = batch[i].height
	}
	slices.Sort(vals)
	vals = slices.Compact(vals)

	t := waveletTree{begin: begin, end: end}
	t.nodes = append(t.nodes, waveletNode{
		minHeight: vals[0], maxHeight: vals[len(vals)-1],
		begin: 0, end: n, left: -1, right: -1,
	})
	// lohi[k] is the distinct-value index range of node k.
	lohi := [][2]int{{0, len(vals) - 1}}

	order := make([]int, n) // batch-relative element index per layer position
	for i := range order {
		order[i] = i
	}
	next := make([]int, n)

	var (
		frontier = []int{0} // nodes of the current depth
		depth    int
		p        int
		k        int
	)
	for len(frontier) > 0 {
		// Decide pivots and children for this depth.
		var children []int
		for _, k = range frontier {
			lo, hi := lohi[k][0], lohi[k][1]
			if lo == hi {
				continue
			}
			mid := (lo + hi + 1) / 2
			t.nodes[k].pivot = vals[mid]
			t.nodes[k].left = len(t.nodes)
			t.nodes = append(t.nodes, waveletNode{minHeight: vals[lo], maxHeight: vals[mid-1], depth: depth + 1, left: -1, right: -1})
			lohi = append(lohi, [2]int{lo, mid - 1})
			t.nodes[k].right = len(t.nodes)
			t.nodes = append(t.nodes, waveletNode{minHeight: vals[mid], maxHeight: vals[hi], depth: depth + 1, left: -1, right: -1})
			lohi = append(lohi, [2]int{mid, hi})
			children = append(children, t.nodes[k].left, t.nodes[k].right)
		}

		// Record this layer.
		layer := make([]elementInfo, n+1)
		copy(next, order)
		for _, k = range frontier {
			nd := &t.nodes[k]
			if nd.left < 0 {
				continue
			}
			// Stable partition of [nd.begin, nd.end) into next.
			var nLeft int
			for p = nd.begin; p < nd.end; p++ {
				if batch[order[p]].height < nd.pivot {
					nLeft++
				}
			}
			var li, ri = nd.begin, nd.begin + nLeft
			for p = nd.begin; p < nd.end; p++ {
				if batch[order[p]].height < nd.pivot {
					next[li] = order[p]
					li++
				} else {
					next[ri] = order[p]
					ri++
				}
			}
			t.nodes[nd.left].begin, t.nodes[nd.left].end = nd.begin, nd.begin+nLeft
			t.nodes[nd.right].begin, t.nodes[nd.right].end = nd.begin+nLeft, nd.end
		}
		// Positions are routed left only inside internal nodes of this depth.
		isLeft := make([]bool, n)
		for _, k = range frontier {
			nd := &t.nodes[k]
			if nd.left < 0 {
				continue
			}
			for p = nd.begin; p < nd.end; p++ {
				isLeft[p] = batch[order[p]].height < nd.pivot
			}
		}
		for p = 0; p < n; p++ {
			layer[p+1].prefixSum = layer[p].prefixSum + batch[order[p]].weight
			layer[p+1].leftBefore = layer[p].leftBefore
			if isLeft[p] {
				layer[p+1].leftBefore++
			}
		}
		t.layers = append(t.layers, layer)

		order, next = next, order
		frontier = children
		depth++
	}

	w.trees = append(w.trees, t)
	w.built = end
}

// RangeSumWithThreshold returns Σ weight over positions [begin, end) whose
// height ≥ threshold. Use math.MinInt64 for the plain range sum.
//
// Panics when the range is out of bounds, covers elements not yet built, or
// straddles two trees: those are programming errors.
func (w *WeightedWaveletTree) RangeSumWithThreshold(threshold int64, begin, end int) int64 {
	if begin < 0 || end < begin || end > len(w.elements) {
		panic(panicRangeOutOfBounds)
	}
	if begin == end {
		return 0
	}
	if end > w.built {
		panic(panicNotBuilt)
	}
	ti := sort.Search(len(w.trees), func(i int) bool { return w.trees[i].end > begin })
	t := &w.trees[ti]
	if end > t.end {
		panic(panicStraddle)
	}
	return t.rangeSum(threshold, begin-t.begin, end-t.begin)
}

func (t *waveletTree) layerSum(depth, l, r int) int64 {
	layer := t.layers[depth]
	return layer[r].prefixSum - layer[l].prefixSum
}

func (t *waveletTree) rangeSum(threshold int64, l, r int) int64 {
	var (
		sum  int64
		node int
	)
	for l < r {
		nd := &t.nodes[node]
		if threshold <= nd.minHeight {
			return sum + t.layerSum(nd.depth, l, r)
		}
		if threshold > nd.maxHeight {
			return sum
		}
		// minHeight < threshold ≤ maxHeight: nd is internal.
		layer := t.layers[nd.depth]
		base := layer[nd.begin].leftBefore
		nLeft := layer[nd.end].leftBefore - base
		leftL := layer[l].leftBefore - base
		leftR := layer[r].leftBefore - base
		ll, lr := nd.begin+leftL, nd.begin+leftR
		rl, rr := nd.begin+nLeft+(l-nd.begin-leftL), nd.begin+nLeft+(r-nd.begin-leftR)
		if threshold <= nd.pivot {
			sum += t.layerSum(nd.depth+1, rl, rr)
			node, l, r = nd.left, ll, lr
		} else {
			node, l, r = nd.right, rl, rr
		}
	}
	return sum
}
