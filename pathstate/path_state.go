package pathstate

import (
	"fmt"
	"iter"
)

// PathState holds the committed routes and the pending candidate change.
type PathState struct {
	numNodes  int
	numPaths  int
	starts    []int
	ends      []int
	threshold int // committed array size that triggers a full commit

	// Committed state.
	committedNodes []int // the committed array
	committedIndex []int // node → index in committedNodes
	committedPaths []int // node → path, Loop or Unassigned

	// chains[0:numPaths] are the committed path ranges; pending descriptions
	// are appended after them and dropped on Commit/Revert.
	chains       []ChainBounds
	paths        []pathBounds // path → its range in chains
	changedPaths []int
	changedLoops []int
	pathChanged  []bool
	loopChanged  []bool
	invalid      bool

	version uint64

	// Memoized change-aware Path(): valid when pendingBuilt == version.
	pendingPath  []int
	pendingStamp []uint64
	pendingBuilt uint64
}

// New creates a PathState with numNodes nodes and one path per
// (pathStart[i], pathEnd[i]) pair, then calls Reset.
//
// Errors: ErrNegativeNodeCount, ErrTerminalsMismatch, ErrNodeOutOfRange,
// ErrDuplicateTerminal (wrapped with the offending path).
//
// Complexity: O(numNodes + numPaths).
func New(numNodes int, pathStart, pathEnd []int) (*PathState, error) {
	if numNodes < 0 {
		return nil, ErrNegativeNodeCount
	}
	if len(pathStart) != len(pathEnd) {
		return nil, ErrTerminalsMismatch
	}
	var (
		numPaths = len(pathStart)
		seen     = make([]bool, numNodes)
		path     int
	)
	for path = 0; path < numPaths; path++ {
		for _, node := range [2]int{pathStart[path], pathEnd[path]} {
			if node < 0 || node >= numNodes {
				return nil, fmt.Errorf("%w: path %d terminal %d", ErrNodeOutOfRange, path, node)
			}
			if seen[node] {
				return nil, fmt.Errorf("%w: path %d terminal %d", ErrDuplicateTerminal, path, node)
			}
			seen[node] = true
		}
	}

	ps := &PathState{
		numNodes:       numNodes,
		numPaths:       numPaths,
		starts:         append([]int(nil), pathStart...),
		ends:           append([]int(nil), pathEnd...),
		threshold:      max(minCommitThreshold, 4*numNodes),
		committedIndex: make([]int, numNodes),
		committedPaths: make([]int, numNodes),
		paths:          make([]pathBounds, numPaths),
		pathChanged:    make([]bool, numPaths),
		loopChanged:    make([]bool, numNodes),
		pendingPath:    make([]int, numNodes),
		pendingStamp:   make([]uint64, numNodes),
	}
	ps.Reset()
	return ps, nil
}

// Reset sets every path to start→end and every other node to a loop, and
// drops any pending change.
//
// Complexity: O(NumNodes).
func (ps *PathState) Reset() {
	var (
		node int
		path int
	)
	for node = 0; node < ps.numNodes; node++ {
		ps.committedIndex[node] = -1
		ps.committedPaths[node] = Loop
		ps.loopChanged[node] = false
	}
	ps.committedNodes = ps.committedNodes[:0]
	ps.chains = ps.chains[:0]
	for path = 0; path < ps.numPaths; path++ {
		begin := len(ps.committedNodes)
		ps.committedNodes = append(ps.committedNodes, ps.starts[path], ps.ends[path])
		ps.committedIndex[ps.starts[path]] = begin
		ps.committedIndex[ps.ends[path]] = begin + 1
		ps.committedPaths[ps.starts[path]] = path
		ps.committedPaths[ps.ends[path]] = path
		ps.chains = append(ps.chains, ChainBounds{Begin: begin, End: begin + 2})
		ps.paths[path] = pathBounds{begin: path, end: path + 1}
		ps.pathChanged[path] = false
	}
	// Loops still need a committed index so that chains can insert them.
	for node = 0; node < ps.numNodes; node++ {
		if ps.committedIndex[node] != -1 {
			continue
		}
		ps.committedIndex[node] = len(ps.committedNodes)
		ps.committedNodes = append(ps.committedNodes, node)
	}
	ps.changedPaths = ps.changedPaths[:0]
	ps.changedLoops = ps.changedLoops[:0]
	ps.invalid = false
	ps.version++
}

// NumNodes returns the number of nodes.
func (ps *PathState) NumNodes() int { return ps.numNodes }

// NumPaths returns the number of paths.
func (ps *PathState) NumPaths() int { return ps.numPaths }

// Start returns the start node of path.
func (ps *PathState) Start(path int) int { return ps.starts[path] }

// End returns the end node of path.
func (ps *PathState) End(path int) int { return ps.ends[path] }

// CommittedIndex returns the index of node in the committed array.
// Chains inserting node use [CommittedIndex(node), CommittedIndex(node)+1).
func (ps *PathState) CommittedIndex(node int) int { return ps.committedIndex[node] }

// CommittedNode returns the node stored at committed index i.
func (ps *PathState) CommittedNode(i int) int { return ps.committedNodes[i] }

// CommittedPathRange returns the committed index range of path.
func (ps *PathState) CommittedPathRange(path int) ChainBounds { return ps.chains[path] }

// CommittedPath returns the path of node in the committed state.
func (ps *PathState) CommittedPath(node int) int { return ps.committedPaths[node] }

// CommittedSize returns the length of the committed array, duplicates included.
func (ps *PathState) CommittedSize() int { return len(ps.committedNodes) }

// Version returns a stamp that changes on every mutation of the state.
// Checkers compare stamps to detect a Commit without a preceding Check.
func (ps *PathState) Version() uint64 { return ps.version }

// ChangedPaths returns the paths described by the pending change.
// The slice is owned by the PathState and valid until the next mutation.
func (ps *PathState) ChangedPaths() []int { return ps.changedPaths }

// ChangedLoops returns the nodes that the pending change turns into loops.
// The slice is owned by the PathState and valid until the next mutation.
func (ps *PathState) ChangedLoops() []int { return ps.changedLoops }

// Chains returns the chains of path: the pending description if path
// changed, otherwise its single committed chain.
func (ps *PathState) Chains(path int) ChainRange {
	var b = ps.paths[path]
	return ChainRange{ps: ps, begin: b.begin, end: b.end}
}

// Nodes iterates over the nodes of path, chain by chain.
func (ps *PathState) Nodes(path int) iter.Seq[int] {
	var r = ps.Chains(path)
	return func(yield func(int) bool) {
		var (
			nodes = ps.committedNodes
			c     ChainBounds
			i, j  int
		)
		for i = r.begin; i < r.end; i++ {
			c = ps.chains[i]
			for j = c.Begin; j < c.End; j++ {
				if !yield(nodes[j]) {
					return
				}
			}
		}
	}
}

// Path returns the path of node under the pending change: a path index,
// Loop, or Unassigned for a node dropped from a changed path without being
// declared a loop. Nodes of unchanged paths report their committed path.
//
// Complexity: O(1) without a pending change; otherwise the first call after
// a mutation costs O(#nodes of changed paths, old and new), later calls O(1).
func (ps *PathState) Path(node int) int {
	if len(ps.changedPaths) == 0 && len(ps.changedLoops) == 0 {
		return ps.committedPaths[node]
	}
	if ps.pendingBuilt != ps.version {
		ps.buildPendingPaths()
	}
	if ps.pendingStamp[node] == ps.version {
		return ps.pendingPath[node]
	}
	return ps.committedPaths[node]
}

func (ps *PathState) buildPendingPaths() {
	var (
		v = ps.version
		i int
	)
	for _, path := range ps.changedPaths {
		old := ps.chains[path]
		for i = old.Begin; i < old.End; i++ {
			node := ps.committedNodes[i]
			ps.pendingStamp[node] = v
			ps.pendingPath[node] = Unassigned
		}
	}
	for _, path := range ps.changedPaths {
		for node := range ps.Nodes(path) {
			ps.pendingStamp[node] = v
			ps.pendingPath[node] = path
		}
	}
	for _, node := range ps.changedLoops {
		ps.pendingStamp[node] = v
		ps.pendingPath[node] = Loop
	}
	ps.pendingBuilt = v
}

// ChangePath sets the pending description of path to chains, replacing any
// previous description of path in this cycle. Chains may be non-adjacent and
// in any order; empty chains are ignored.
//
// Complexity: O(len(chains)).
func (ps *PathState) ChangePath(path int, chains ...ChainBounds) {
	if !ps.pathChanged[path] {
		ps.pathChanged[path] = true
		ps.changedPaths = append(ps.changedPaths, path)
	}
	begin := len(ps.chains)
	for _, c := range chains {
		if c.End > c.Begin {
			ps.chains = append(ps.chains, c)
		}
	}
	ps.paths[path] = pathBounds{begin: begin, end: len(ps.chains)}
	ps.version++
}

// ChangeLoops marks nodes as loops in the pending change. Nodes that are
// already loops in the committed state, or already marked, are ignored.
//
// Complexity: O(len(nodes)).
func (ps *PathState) ChangeLoops(nodes ...int) {
	for _, node := range nodes {
		if ps.committedPaths[node] == Loop || ps.loopChanged[node] {
			continue
		}
		ps.loopChanged[node] = true
		ps.changedLoops = append(ps.changedLoops, node)
	}
	ps.version++
}

// SetInvalid flags the pending candidate as unusable. Queries stay safe;
// callers must reject the candidate.
func (ps *PathState) SetInvalid() {
	ps.invalid = true
	ps.version++
}

// IsInvalid reports whether SetInvalid was called in this cycle.
func (ps *PathState) IsInvalid() bool { return ps.invalid }

// Revert discards the pending change.
//
// Complexity: O(#changed paths + #changed loops).
func (ps *PathState) Revert() {
	ps.chains = ps.chains[:ps.numPaths]
	for _, path := range ps.changedPaths {
		ps.paths[path] = pathBounds{begin: path, end: path + 1}
		ps.pathChanged[path] = false
	}
	for _, node := range ps.changedLoops {
		ps.loopChanged[node] = false
	}
	ps.changedPaths = ps.changedPaths[:0]
	ps.changedLoops = ps.changedLoops[:0]
	ps.invalid = false
	ps.version++
}

// Commit makes the pending change the committed state. Checkers must have
// committed before, since they read the pending description.
// Panics if the candidate is invalid.
//
// Complexity: see package documentation.
func (ps *PathState) Commit() {
	if ps.invalid {
		panic(panicCommitInvalid)
	}
	var i int
	// Nodes leaving a changed path are unassigned unless placed again below.
	for _, path := range ps.changedPaths {
		old := ps.chains[path]
		for i = old.Begin; i < old.End; i++ {
			ps.committedPaths[ps.committedNodes[i]] = Unassigned
		}
	}
	for _, node := range ps.changedLoops {
		ps.committedPaths[node] = Loop
	}
	if len(ps.committedNodes) < ps.threshold {
		ps.incrementalCommit()
	} else {
		ps.fullCommit()
	}
	ps.Revert()
}

// incrementalCommit appends the changed paths at the end of the committed
// array. Loops keep their index: their old slot is never overwritten.
func (ps *PathState) incrementalCommit() {
	var (
		begin int
		i     int
	)
	for _, path := range ps.changedPaths {
		begin = len(ps.committedNodes)
		ps.appendPendingPath(path)
		ps.chains[path] = ChainBounds{Begin: begin, End: len(ps.committedNodes)}
		for i = begin; i < len(ps.committedNodes); i++ {
			node := ps.committedNodes[i]
			ps.committedIndex[node] = i
			ps.committedPaths[node] = path
		}
	}
}

// fullCommit rebuilds a compact committed array: all paths, then all nodes
// that are on no path.
func (ps *PathState) fullCommit() {
	var (
		old  = len(ps.committedNodes)
		path int
		node int
		i    int
	)
	for path = 0; path < ps.numPaths; path++ {
		begin := len(ps.committedNodes) - old
		ps.appendPendingPath(path)
		ps.chains[path] = ChainBounds{Begin: begin, End: len(ps.committedNodes) - old}
	}
	ps.committedNodes = append(ps.committedNodes[:0], ps.committedNodes[old:]...)

	for node = 0; node < ps.numNodes; node++ {
		ps.committedIndex[node] = -1
	}
	for path = 0; path < ps.numPaths; path++ {
		c := ps.chains[path]
		for i = c.Begin; i < c.End; i++ {
			node = ps.committedNodes[i]
			ps.committedIndex[node] = i
			ps.committedPaths[node] = path
		}
	}
	for node = 0; node < ps.numNodes; node++ {
		if ps.committedIndex[node] != -1 {
			continue
		}
		ps.committedIndex[node] = len(ps.committedNodes)
		ps.committedNodes = append(ps.committedNodes, node)
	}
}

// appendPendingPath copies the nodes of path's current description to the
// end of the committed array.
func (ps *PathState) appendPendingPath(path int) {
	var (
		b = ps.paths[path]
		c ChainBounds
		i int
		j int
	)
	for i = b.begin; i < b.end; i++ {
		c = ps.chains[i]
		for j = c.Begin; j < c.End; j++ {
			ps.committedNodes = append(ps.committedNodes, ps.committedNodes[j])
		}
	}
}
