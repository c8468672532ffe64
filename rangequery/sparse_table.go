// Package rangequery - generic doubling table (sparse table).
//
// Layer l, position i holds combine over the window of 2^l elements ending
// at i, built from two layer l−1 entries 2^(l−1) apart. A query over
// [begin, end) combines the two windows of size 2^⌊log2(end−begin)⌋ that
// start at begin and end at end−1. The two windows overlap in general, so
// combine MUST be idempotent (combine(x, x) == x) as well as associative and
// commutative: min, max, bitwise or, interval intersection and records of
// such fields all qualify; sums do not.
//
// Complexity:
//   - PushBack: amortized O(1).
//   - MakeTableFromNewElements: O(b log b) for a batch of b elements.
//   - Query: O(1).
package rangequery

import "math/bits"

// SparseTable answers idempotent range aggregates in O(1).
type SparseTable[T any] struct {
	combine func(a, b T) T
	layers  [][]T // layers[0] is the raw array
	batch   []int // index → first index of its batch, for built elements
	built   int   // prefix of layers[0] covered by built windows
}

// NewSparseTable returns an empty table that aggregates with combine.
// Panics if combine is nil.
func NewSparseTable[T any](combine func(a, b T) T) *SparseTable[T] {
	if combine == nil {
		panic(panicNilCombine)
	}
	return &SparseTable[T]{combine: combine, layers: make([][]T, 1)}
}

// PushBack appends x to the pending batch.
func (st *SparseTable[T]) PushBack(x T) {
	st.layers[0] = append(st.layers[0], x)
}

// MakeTableFromNewElements builds every window that lies entirely inside the
// batch of elements pushed since the previous call.
func (st *SparseTable[T]) MakeTableFromNewElements() {
	var (
		begin = st.built
		end   = len(st.layers[0])
		l     int // layer being built
		w     int // window size 2^l
		i     int
	)
	for l, w = 1, 2; w <= end-begin; l, w = l+1, w<<1 {
		if len(st.layers) == l {
			st.layers = append(st.layers, nil)
		}
		layer := st.layers[l]
		if len(layer) < end {
			layer = append(layer, make([]T, end-len(layer))...)
		}
		prev := st.layers[l-1]
		half := w >> 1
		for i = begin + w - 1; i < end; i++ {
			layer[i] = st.combine(prev[i-half], prev[i])
		}
		st.layers[l] = layer
	}
	for i = begin; i < end; i++ {
		st.batch = append(st.batch, begin)
	}
	st.built = end
}

// Query returns the aggregate over [begin, end), which must be non-empty and
// lie inside one batch. Panics otherwise.
func (st *SparseTable[T]) Query(begin, end int) T {
	if begin >= end {
		panic(panicEmptyRange)
	}
	if begin < 0 || end > st.built {
		if end <= len(st.layers[0]) && begin >= 0 {
			panic(panicNotBuilt)
		}
		panic(panicRangeOutOfBounds)
	}
	if st.batch[begin] != st.batch[end-1] {
		panic(panicTableStraddle)
	}
	l := bits.Len(uint(end-begin)) - 1
	layer := st.layers[l]
	return st.combine(layer[begin+(1<<l)-1], layer[end-1])
}

// At returns the raw element at index i.
func (st *SparseTable[T]) At(i int) T {
	return st.layers[0][i]
}

// Len returns the number of pushed elements, built or not.
func (st *SparseTable[T]) Len() int {
	return len(st.layers[0])
}

// Clear removes all elements; previously issued indices become invalid.
// Allocated layer storage is kept for reuse.
func (st *SparseTable[T]) Clear() {
	for l := range st.layers {
		st.layers[l] = st.layers[l][:0]
	}
	st.batch = st.batch[:0]
	st.built = 0
}
