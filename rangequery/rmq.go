package rangequery

import "cmp"

// RangeMinimumQuery answers "minimum of array[begin:end]" in O(1).
//
// It can be built statically from an array (NewRangeMinimumQuery) or
// incrementally, batch by batch, with PushBack + MakeTableFromNewElements.
//
// Complexity:
//   - Build: O(n log n) time and space.
//   - RangeMinimum: O(1).
type RangeMinimumQuery[T any] struct {
	table *SparseTable[T]
}

// NewRangeMinimumQuery builds a static RMQ over array using the natural order.
func NewRangeMinimumQuery[T cmp.Ordered](array []T) *RangeMinimumQuery[T] {
	return NewRangeMinimumQueryFunc(array, cmp.Less[T])
}

// NewRangeMinimumQueryFunc builds a static RMQ over array ordered by less.
// A nil or empty array yields an empty RMQ ready for PushBack.
func NewRangeMinimumQueryFunc[T any](array []T, less func(a, b T) bool) *RangeMinimumQuery[T] {
	rmq := &RangeMinimumQuery[T]{
		table: NewSparseTable(func(a, b T) T {
			if less(b, a) {
				return b
			}
			return a
		}),
	}
	for _, x := range array {
		rmq.table.PushBack(x)
	}
	rmq.table.MakeTableFromNewElements()
	return rmq
}

// RangeMinimum returns the minimum over [begin, end); the range must be
// non-empty and inside one batch.
func (r *RangeMinimumQuery[T]) RangeMinimum(begin, end int) T {
	return r.table.Query(begin, end)
}

// PushBack appends x to the pending batch.
func (r *RangeMinimumQuery[T]) PushBack(x T) {
	r.table.PushBack(x)
}

// MakeTableFromNewElements makes the pending batch queryable.
func (r *RangeMinimumQuery[T]) MakeTableFromNewElements() {
	r.table.MakeTableFromNewElements()
}

// TableSize returns the number of pushed elements.
func (r *RangeMinimumQuery[T]) TableSize() int {
	return r.table.Len()
}

// At returns the raw element at index i.
func (r *RangeMinimumQuery[T]) At(i int) T {
	return r.table.At(i)
}

// Clear removes all elements.
func (r *RangeMinimumQuery[T]) Clear() {
	r.table.Clear()
}
