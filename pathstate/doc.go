// Package pathstate is the revertible, incremental representation of a set
// of vehicle routes shared by every route checker.
//
// 🚀 What is a PathState?
//
//	A fixed number of paths, each running from a fixed start node to a fixed
//	end node, plus "loop" nodes that are on no path. The last committed
//	solution is stored as one array of nodes (the committed array) in which
//	every path occupies a contiguous index range. A candidate change is
//	described without copying nodes: each changed path becomes an ordered
//	list of chains, index ranges into the committed array.
//
//	    committed: [ s0 a b c e0 | s1 d e1 | f g ]      (f, g are loops)
//	    change:    path 0 = [s0] [f] [a b c e0]          insert f after s0
//	               path 1 unchanged
//
// ⚙️ Cycle protocol:
//
//	ChangePath / ChangeLoops   any number of times
//	Check() on every checker   read-only, any order
//	then exactly one of
//	  every checker's Commit(), then PathState.Commit()
//	  PathState.Revert()
//
// Complexity:
//   - ChangePath: O(#chains). ChangeLoops: O(#nodes given).
//   - Revert: O(#changed paths).
//   - Commit: O(#nodes of changed paths) amortized; a full rebuild in
//     O(NumNodes) happens once the committed array has grown past
//     max(16, 4·NumNodes) entries, which bounds memory.
//
// Concurrency:
//   - Not safe for concurrent use, not even for reads: Path() memoizes the
//     pending assignment. Use one PathState (and its checkers) per goroutine.
package pathstate
