// Package rangequery provides the range-query acceleration structures used
// by the route checkers.
//
// What is inside?
//
//	SparseTable[T]        — generic doubling table for idempotent aggregates
//	                        (min, max, intersection, ...): O(1) queries after
//	                        O(n log n) preprocessing.
//	RangeMinimumQuery[T]  — SparseTable specialised to a "less" order.
//	WeightedWaveletTree   — sums of weights whose height is at least a
//	                        threshold, over a contiguous index range, in
//	                        O(log distinct heights).
//
// Incremental batches:
//
//	All three structures are append-only. Elements are pushed with PushBack
//	and become queryable once MakeTableFromNewElements (tables) or
//	MakeTreeFromNewElements (wavelet tree) has been called. Each such call
//	builds over exactly the elements pushed since the previous call: a
//	"batch". Queries must stay inside one batch. The checkers push one batch
//	per route, so a query over a chain of a committed route is always valid.
//	Clear drops everything and invalidates all previously issued indices.
//
// Concurrency:
//   - No structure is safe for concurrent mutation; concurrent read-only
//     queries are fine once building is done.
package rangequery
