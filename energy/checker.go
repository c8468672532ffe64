package energy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
	"github.com/katalvlaran/lvroute/rangequery"
)

// Checker computes the energy cost of the candidate routes of a PathState.
// It never rejects a candidate: callers compare AcceptedCost to their bound.
type Checker struct {
	ps        *pathstate.PathState
	cfg       Config
	threshold int

	// Per committed position, one batch per path: the relative force after
	// the node, counted from the start of its path.
	forceAfter *rangequery.RangeMinimumQuery[int64]
	// (forceAfter, distance to the next node) and (forceAfter, forceAfter·distance).
	distance   rangequery.WeightedWaveletTree
	energy     rangequery.WeightedWaveletTree
	batchStart []int // path → position of its committed start node

	committedCost  []int64
	committedTotal int64
	acceptedTotal  int64
	pending        []pathCost
	checkedVersion uint64
}

type pathCost struct {
	path int
	cost int64
}

// NewChecker validates cfg against ps, indexes the committed paths of ps and
// computes their cost. ps must have no pending change.
//
// Errors: ErrNilPathState, ErrPathCountMismatch, ErrUnknownClass, ErrNilFunc,
// ErrNegativeCost.
func NewChecker(ps *pathstate.PathState, cfg Config) (*Checker, error) {
	if ps == nil {
		return nil, ErrNilPathState
	}
	n := ps.NumPaths()
	for _, l := range []int{
		len(cfg.ForceStartMin), len(cfg.ForceEndMin), len(cfg.ForceClass),
		len(cfg.DistanceClass), len(cfg.PathEnergyCost), len(cfg.PathHasCostWhenEmpty),
	} {
		if l != n {
			return nil, ErrPathCountMismatch
		}
	}
	var path int
	for path = 0; path < n; path++ {
		fc, dc := cfg.ForceClass[path], cfg.DistanceClass[path]
		if fc < 0 || fc >= len(cfg.ForcePerClass) || dc < 0 || dc >= len(cfg.DistancePerClass) {
			return nil, fmt.Errorf("%w: path %d force class %d distance class %d", ErrUnknownClass, path, fc, dc)
		}
		if cfg.ForcePerClass[fc] == nil || cfg.DistancePerClass[dc] == nil {
			return nil, fmt.Errorf("%w: path %d", ErrNilFunc, path)
		}
		if e := cfg.PathEnergyCost[path]; e.CostPerUnitBelowThreshold < 0 || e.CostPerUnitAboveThreshold < 0 {
			return nil, fmt.Errorf("%w: path %d", ErrNegativeCost, path)
		}
	}

	c := &Checker{
		ps:            ps,
		cfg:           cfg,
		threshold:     max(minCommitThreshold, 4*ps.NumNodes()),
		forceAfter:    rangequery.NewRangeMinimumQuery[int64](nil),
		batchStart:    make([]int, n),
		committedCost: make([]int64, n),
	}
	c.fullCommit()
	for path = 0; path < n; path++ {
		c.committedCost[path] = c.pathCost(path)
		c.committedTotal = interval.CapAdd(c.committedTotal, c.committedCost[path])
	}
	c.acceptedTotal = c.committedTotal
	return c, nil
}

// CommittedCost returns the total cost of the committed routes.
func (c *Checker) CommittedCost() int64 { return c.committedTotal }

// AcceptedCost returns the total cost computed by the last Check.
func (c *Checker) AcceptedCost() int64 { return c.acceptedTotal }

// CommittedPathCost returns the committed cost of path.
func (c *Checker) CommittedPathCost(path int) int64 { return c.committedCost[path] }

// Check recomputes the cost of every changed path and always returns true.
//
// Complexity: O(#chains · log(distinct forces)) for chains indexed at the
// last commit, plus the length of every other chain.
func (c *Checker) Check() bool {
	c.checkedVersion = c.ps.Version()
	c.acceptedTotal = c.committedTotal
	c.pending = c.pending[:0]
	if c.ps.IsInvalid() {
		return true
	}
	for _, path := range c.ps.ChangedPaths() {
		cost := c.pathCost(path)
		c.pending = append(c.pending, pathCost{path: path, cost: cost})
		c.acceptedTotal = interval.CapAdd(interval.CapSub(c.acceptedTotal, c.committedCost[path]), cost)
	}
	return true
}

// Commit promotes AcceptedCost and indexes the changed paths. Must follow a
// Check of the same candidate and run before PathState.Commit.
func (c *Checker) Commit() {
	if c.checkedVersion != c.ps.Version() {
		panic(panicCommitWithoutCheck)
	}
	for _, pc := range c.pending {
		c.committedCost[pc.path] = pc.cost
	}
	c.committedTotal = c.acceptedTotal
	if c.forceAfter.TableSize() >= c.threshold {
		c.fullCommit()
		return
	}
	for _, path := range c.ps.ChangedPaths() {
		c.appendPath(path)
	}
}

func (c *Checker) fullCommit() {
	c.forceAfter.Clear()
	c.distance.Clear()
	c.energy.Clear()
	for path := 0; path < c.ps.NumPaths(); path++ {
		c.appendPath(path)
	}
}

// appendPath indexes the current route of path as one batch.
func (c *Checker) appendPath(path int) {
	var (
		force    = c.cfg.ForcePerClass[c.cfg.ForceClass[path]]
		distance = c.cfg.DistancePerClass[c.cfg.DistanceClass[path]]
		rel      int64
		prev     = -1
	)
	c.batchStart[path] = c.forceAfter.TableSize()
	for node := range c.ps.Nodes(path) {
		if prev >= 0 {
			d := distance(prev, node)
			c.distance.PushBack(rel, d)
			c.energy.PushBack(rel, interval.CapProd(rel, d))
		}
		rel = interval.CapAdd(rel, force(node))
		c.forceAfter.PushBack(rel)
		prev = node
	}
	// The last node has no outgoing arc.
	c.distance.PushBack(rel, 0)
	c.energy.PushBack(rel, 0)

	c.forceAfter.MakeTableFromNewElements()
	c.distance.MakeTreeFromNewElements()
	c.energy.MakeTreeFromNewElements()
}

// indexed returns the position of chain's first node when the chain is a
// slice of one committed path with the same force and distance classes as
// path. The latest batch of every path mirrors its committed route.
func (c *Checker) indexed(path int, chain pathstate.Chain) (int, bool) {
	if chain.NumNodes() < 2 {
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
	if c.cfg.ForceClass[owner] != c.cfg.ForceClass[path] || c.cfg.DistanceClass[owner] != c.cfg.DistanceClass[path] {
		return 0, false
	}
	return c.batchStart[owner] + chain.BeginIndex() - r.Begin, true
}

// pathCost evaluates the current route of path in two passes: the relative
// force profile gives the start force, then every arc is priced.
func (c *Checker) pathCost(path int) int64 {
	var (
		force    = c.cfg.ForcePerClass[c.cfg.ForceClass[path]]
		distance = c.cfg.DistancePerClass[c.cfg.DistanceClass[path]]
		cost     = c.cfg.PathEnergyCost[path]
		chains   = c.ps.Chains(path)
		numNodes int
		rel      int64
		minRel   int64
	)
	for chain := range chains.All() {
		numNodes += chain.NumNodes()
		if p, ok := c.indexed(path, chain); ok {
			j := p + chain.NumNodes() - 1
			shift := rel + force(chain.First()) - c.forceAfter.At(p)
			minRel = min(minRel, shift+c.forceAfter.RangeMinimum(p, j+1))
			rel = shift + c.forceAfter.At(j)
			continue
		}
		for node := range chain.Nodes() {
			rel += force(node)
			minRel = min(minRel, rel)
		}
	}
	if numNodes <= 2 && !c.cfg.PathHasCostWhenEmpty[path] {
		return 0
	}
	if cost.IsNull() {
		return 0
	}

	var (
		th      = cost.Threshold
		running = max(c.cfg.ForceStartMin[path], -minRel, c.cfg.ForceEndMin[path]-rel)
		acc     energyAccumulator
		prev    = -1
	)
	for chain := range chains.All() {
		first := chain.First()
		if prev >= 0 {
			acc.addArc(running, distance(prev, first), th)
		}
		if p, ok := c.indexed(path, chain); ok {
			j := p + chain.NumNodes() - 1
			base := running + force(first) - c.forceAfter.At(p)
			acc.addIndexed(c, p, j, base, th)
			running = base + c.forceAfter.At(j)
		} else {
			from := -1
			for node := range chain.Nodes() {
				if from >= 0 {
					acc.addArc(running, distance(from, node), th)
				}
				running += force(node)
				from = node
			}
		}
		prev = chain.Last()
	}
	return interval.CapAdd(
		interval.CapProd(acc.below, cost.CostPerUnitBelowThreshold),
		interval.CapProd(acc.above, cost.CostPerUnitAboveThreshold),
	)
}

// energyAccumulator splits energy at the threshold: an arc of force f and
// distance d adds min(f, th)·d below and max(0, f − th)·d above.
type energyAccumulator struct {
	below, above int64
}

func (a *energyAccumulator) addArc(f, d, th int64) {
	if f >= th {
		a.below = interval.CapAdd(a.below, interval.CapProd(th, d))
		a.above = interval.CapAdd(a.above, interval.CapProd(f-th, d))
		return
	}
	a.below = interval.CapAdd(a.below, interval.CapProd(f, d))
}

// addIndexed adds the arcs of positions [p, j) whose absolute force is
// base + forceAfter.
func (a *energyAccumulator) addIndexed(c *Checker, p, j int, base, th int64) {
	var (
		shifted = interval.CapSub(th, base)
		dAll    = c.distance.RangeSumWithThreshold(math.MinInt64, p, j)
		dAbove  = c.distance.RangeSumWithThreshold(shifted, p, j)
		eAll    = c.energy.RangeSumWithThreshold(math.MinInt64, p, j)
		eAbove  = c.energy.RangeSumWithThreshold(shifted, p, j)
	)
	a.above = interval.CapAdd(a.above, interval.CapAdd(eAbove, interval.CapProd(base-th, dAbove)))
	a.below = interval.CapAdd(a.below, interval.CapAdd(
		interval.CapProd(th, dAbove),
		interval.CapAdd(eAll-eAbove, interval.CapProd(base, dAll-dAbove)),
	))
}
