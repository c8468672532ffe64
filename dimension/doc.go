// Package dimension checks that a cumulative quantity (load, time budget,
// ...) stays within capacity along every changed path of a PathState.
//
// 🚀 Model:
//
//	Each path has a capacity interval and a class. The class selects a
//	demand function: the quantity added on arc (from, to) is any value of
//	demand(from, to), an interval. Each node also has its own capacity
//	interval. The cumul at the start node may be anything in the path
//	capacity; after each arc it is the previous cumul plus the arc demand,
//	intersected with the capacity of the node reached and of the path.
//	A route is feasible when that interval never becomes empty.
//
// ⚙️ Incremental evaluation:
//
//	Commit indexes the committed routes into a range-intersection query:
//	prefix sums of demand bounds plus an idempotent sparse table over
//	per-position records. A chain of the candidate that was indexed
//	contiguously, by a path of the same class and capacity, is then crossed
//	in O(1) instead of node by node. Chains shorter than
//	Config.MinRangeSizeForRIQ, or indexed for another path kind, are
//	scanned arc by arc. Links between chains are always evaluated with
//	the demand function.
//
// Complexity:
//   - Check: O(#chains + #arcs scanned) per changed path.
//   - Commit: O(#nodes of changed paths · log) amortized; the index is
//     rebuilt from all paths once it exceeds max(16, 4·NumNodes) entries.
//
// Concurrency:
//   - Shares the PathState's single-goroutine contract.
package dimension
