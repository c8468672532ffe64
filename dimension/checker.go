package dimension

import (
	"fmt"

	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
	"github.com/katalvlaran/lvroute/rangequery"
)

// Checker decides the feasibility of one dimension on the candidate routes
// of a PathState.
type Checker struct {
	ps           *pathstate.PathState
	pathCapacity []interval.ExtendedInterval
	rawCapacity  []interval.Interval
	pathClass    []int
	demand       []DemandFunc
	nodeCapacity []interval.ExtendedInterval
	minRangeSize int
	threshold    int

	// RIQ: one batch per committed path, positions in path order.
	riq        *rangequery.SparseTable[riqRecord]
	prefix     []prefixEntry
	batchStart []int // path → RIQ position of its committed start node

	// Scratch space for conflict computation.
	uStack  []int
	zStack  []int
	records []riqRecord
}

// NewChecker validates cfg against ps and builds the RIQ over the committed
// paths of ps. ps must have no pending change.
//
// Errors: ErrNilPathState, ErrPathCountMismatch, ErrNodeCountMismatch,
// ErrEmptyCapacity, ErrUnknownClass, ErrNilDemand, ErrNegativeRangeSize.
//
// Complexity: O(n log n) for n committed path nodes.
func NewChecker(ps *pathstate.PathState, cfg Config) (*Checker, error) {
	if ps == nil {
		return nil, ErrNilPathState
	}
	if len(cfg.PathCapacity) != ps.NumPaths() || len(cfg.PathClass) != ps.NumPaths() {
		return nil, ErrPathCountMismatch
	}
	if len(cfg.NodeCapacity) != ps.NumNodes() {
		return nil, ErrNodeCountMismatch
	}
	if cfg.MinRangeSizeForRIQ < 0 {
		return nil, ErrNegativeRangeSize
	}
	var path int
	for path = 0; path < ps.NumPaths(); path++ {
		if cfg.PathCapacity[path].IsEmpty() {
			return nil, fmt.Errorf("%w: path %d %v", ErrEmptyCapacity, path, cfg.PathCapacity[path])
		}
		class := cfg.PathClass[path]
		if class < 0 || class >= len(cfg.DemandPerClass) {
			return nil, fmt.Errorf("%w: path %d class %d", ErrUnknownClass, path, class)
		}
		if cfg.DemandPerClass[class] == nil {
			return nil, fmt.Errorf("%w: class %d", ErrNilDemand, class)
		}
	}

	c := &Checker{
		ps:           ps,
		pathCapacity: make([]interval.ExtendedInterval, ps.NumPaths()),
		rawCapacity:  append([]interval.Interval(nil), cfg.PathCapacity...),
		pathClass:    append([]int(nil), cfg.PathClass...),
		demand:       append([]DemandFunc(nil), cfg.DemandPerClass...),
		nodeCapacity: make([]interval.ExtendedInterval, ps.NumNodes()),
		minRangeSize: cfg.MinRangeSizeForRIQ,
		threshold:    max(minCommitThreshold, 4*ps.NumNodes()),
		riq:          rangequery.NewSparseTable(combineRecords),
		batchStart:   make([]int, ps.NumPaths()),
	}
	if c.minRangeSize == 0 {
		c.minRangeSize = DefaultMinRangeSizeForRIQ
	}
	// A single node has no arc to aggregate.
	c.minRangeSize = max(c.minRangeSize, 2)
	for path = 0; path < ps.NumPaths(); path++ {
		c.pathCapacity[path] = interval.ToExtended(cfg.PathCapacity[path])
	}
	for node, capacity := range cfg.NodeCapacity {
		c.nodeCapacity[node] = interval.ToExtended(capacity)
	}
	c.FullCommit()
	return c, nil
}

// Check reports whether every changed path admits a feasible cumul
// assignment. It does not mutate the checker and returns true when the
// candidate is invalid.
//
// Complexity: O(#chains) for chains served by the RIQ, plus the length of
// every scanned chain.
func (c *Checker) Check() bool {
	if c.ps.IsInvalid() {
		return true
	}
	for _, path := range c.ps.ChangedPaths() {
		if !c.checkPath(path) {
			return false
		}
	}
	return true
}

func (c *Checker) checkPath(path int) bool {
	var (
		capacity = c.pathCapacity[path]
		demand   = c.demand[c.pathClass[path]]
		cumul    interval.ExtendedInterval
		prev     = -1
		ok       bool
	)
	for chain := range c.ps.Chains(path).All() {
		first := chain.First()
		if prev < 0 {
			if cumul = capacity.Intersect(c.nodeCapacity[first]); cumul.IsEmpty() {
				return false
			}
		} else if cumul, ok = c.step(cumul, prev, first, demand, capacity); !ok {
			return false
		}

		pos, usable := c.riqRange(path, chain)
		last := pos + chain.NumNodes() - 1
		if usable && c.prefix[last].exact && bounded(cumul.Lower(), cumul.Upper()) {
			if cumul, ok = c.propagate(cumul, pos, last); !ok {
				return false
			}
		} else {
			from := first
			for node := range chain.WithoutFirstNode() {
				if cumul, ok = c.step(cumul, from, node, demand, capacity); !ok {
					return false
				}
				from = node
			}
		}
		prev = chain.Last()
	}
	return true
}

// step moves cumul across arc from → to.
func (c *Checker) step(cumul interval.ExtendedInterval, from, to int, demand DemandFunc, capacity interval.ExtendedInterval) (interval.ExtendedInterval, bool) {
	d := demand(from, to)
	if d.IsEmpty() {
		return cumul, false
	}
	cumul = cumul.Add(interval.ToExtended(d)).Intersect(c.nodeCapacity[to]).Intersect(capacity)
	return cumul, !cumul.IsEmpty()
}

// riqRange returns the RIQ position of chain's first node when the chain is
// long enough, is a slice of one committed path, and that path is
// equivalent to path. The latest batch of a path mirrors its committed
// route, so the slice maps to consecutive positions of one batch.
// Chains of loops and stale indices are scanned.
func (c *Checker) riqRange(path int, chain pathstate.Chain) (int, bool) {
	if chain.NumNodes() < c.minRangeSize {
		return 0, false
	}
	owner := c.ps.CommittedPath(chain.First())
	if owner < 0 {
		return 0, false
	}
	r := c.ps.CommittedPathRange(owner)
	if chain.BeginIndex() < r.Begin || chain.EndIndex() > r.End {
		return 0, false
	}
	if owner != path && (c.pathClass[owner] != c.pathClass[path] || c.rawCapacity[owner] != c.rawCapacity[path]) {
		return 0, false
	}
	return c.batchStart[owner] + chain.BeginIndex() - r.Begin, true
}

// Commit appends the changed paths to the RIQ, or rebuilds it once it has
// grown past max(16, 4·NumNodes) positions. Must run before
// PathState.Commit.
//
// Complexity: O(m log m) for m nodes of changed paths; O(n log n) for a rebuild.
func (c *Checker) Commit() {
	if c.riq.Len() >= c.threshold {
		c.FullCommit()
		return
	}
	for _, path := range c.ps.ChangedPaths() {
		c.appendPath(path)
	}
}

// FullCommit rebuilds the RIQ over the current routes of every path.
func (c *Checker) FullCommit() {
	c.riq.Clear()
	c.prefix = c.prefix[:0]
	for path := 0; path < c.ps.NumPaths(); path++ {
		c.appendPath(path)
	}
}
