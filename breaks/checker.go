package breaks

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
)

// Checker is a light feasibility test of vehicle breaks against the span
// and the start/end cumuls of each changed path.
type Checker struct {
	ps        *pathstate.PathState
	data      []PathData
	working   []bounds // tightened by Check, reset by Relax
	committed []bounds
}

// NewChecker validates data, one entry per path of ps.
//
// Errors: ErrNilPathState, ErrPathCountMismatch, ErrEmptyDomain,
// ErrNegativeInterbreak.
func NewChecker(ps *pathstate.PathState, data []PathData) (*Checker, error) {
	if ps == nil {
		return nil, ErrNilPathState
	}
	if len(data) != ps.NumPaths() {
		return nil, ErrPathCountMismatch
	}
	c := &Checker{
		ps:        ps,
		data:      append([]PathData(nil), data...),
		working:   make([]bounds, len(data)),
		committed: make([]bounds, len(data)),
	}
	for path, d := range data {
		if d.StartCumul.IsEmpty() || d.EndCumul.IsEmpty() || d.TotalTransit.IsEmpty() || d.Span.IsEmpty() {
			return nil, fmt.Errorf("%w: path %d", ErrEmptyDomain, path)
		}
		for _, limit := range d.InterbreakLimits {
			if limit.MaxInterbreakDuration < 0 || limit.MinBreakDuration < 0 {
				return nil, fmt.Errorf("%w: path %d", ErrNegativeInterbreak, path)
			}
		}
		c.working[path] = d.initial()
		c.committed[path] = d.initial()
	}
	return c, nil
}

func (d *PathData) initial() bounds {
	return bounds{start: d.StartCumul, end: d.EndCumul, span: d.Span}
}

// StartCumul returns the committed bounds of the start cumul of path.
func (c *Checker) StartCumul(path int) interval.Interval { return c.committed[path].start }

// EndCumul returns the committed bounds of the end cumul of path.
func (c *Checker) EndCumul(path int) interval.Interval { return c.committed[path].end }

// Span returns the committed bounds of the span of path.
func (c *Checker) Span(path int) interval.Interval { return c.committed[path].span }

// Relax resets the working bounds of the changed paths to their initial
// domains. Call it before Check.
func (c *Checker) Relax() {
	for _, path := range c.ps.ChangedPaths() {
		c.working[path] = c.data[path].initial()
	}
}

// Check tightens the working bounds of every changed path and reports
// whether they all stay non-empty.
//
// Complexity: O(path length + #breaks · #limits) per changed path.
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

// Commit promotes the working bounds of the changed paths.
func (c *Checker) Commit() {
	for _, path := range c.ps.ChangedPaths() {
		c.committed[path] = c.working[path]
	}
}

// minTransit sums the transit of the route of path, chain by chain.
func (c *Checker) minTransit(path int) int64 {
	var (
		transit = c.data[path].Transit
		total   int64
		prev    = -1
	)
	if transit == nil {
		return 0
	}
	for chain := range c.ps.Chains(path).All() {
		for node := range chain.Nodes() {
			if prev >= 0 {
				total = interval.CapAdd(total, transit(prev, node))
			}
			prev = node
		}
	}
	return total
}

func (c *Checker) checkPath(path int) bool {
	var (
		data         = &c.data[path]
		b            = &c.working[path]
		totalTransit = max(data.TotalTransit.Min, c.minTransit(path))
		lbSpan       = b.span.Min
	)
	if totalTransit > data.TotalTransit.Max {
		return false
	}

	// Breaks that must happen while the vehicle is on its route add their
	// duration to the span and widen [startMax, endMin).
	var (
		lbSpanTW = totalTransit
		startMax = b.start.Max
		endMin   = b.end.Min
	)
	for _, br := range data.VehicleBreaks {
		if !br.IsPerformedMin {
			continue
		}
		if br.Start.Max < endMin && startMax < br.End.Min {
			lbSpanTW = interval.CapAdd(lbSpanTW, br.Duration.Min)
			startMax = min(startMax, br.Start.Max)
			endMin = max(endMin, br.End.Min)
		}
	}
	lbSpan = max(lbSpan, lbSpanTW, interval.CapSub(endMin, startMax))

	// Breaks that fit inside the route, and the window they cover.
	var (
		breakStartMin int64 = math.MaxInt64
		breakEndMax   int64 = math.MinInt64
		startMin            = max(b.start.Min, interval.CapSub(endMin, b.span.Max))
		endMax              = min(b.end.Max, interval.CapAdd(startMax, b.span.Max))
		numFeasible   int64
	)
	for _, br := range data.VehicleBreaks {
		if !br.IsPerformedMax {
			continue
		}
		if startMin <= br.Start.Max && br.End.Min <= endMax {
			breakStartMin = min(breakStartMin, br.Start.Min)
			breakEndMax = max(breakEndMax, br.End.Max)
			numFeasible++
		}
	}

	// Every MaxInterbreakDuration of transit needs a break: 0 breaks up to
	// the limit, 1 up to twice the limit, and so on.
	for _, limit := range data.InterbreakLimits {
		if limit.MaxInterbreakDuration == 0 {
			if totalTransit > 0 {
				return false
			}
			continue
		}
		minBreaks := max(0, (totalTransit-1)/limit.MaxInterbreakDuration)
		if lbSpan > limit.MaxInterbreakDuration {
			minBreaks = max(minBreaks, 1)
		}
		if minBreaks > numFeasible {
			return false
		}
		lbSpan = max(lbSpan, interval.CapAdd(totalTransit, interval.CapProd(minBreaks, limit.MinBreakDuration)))
		if minBreaks > 0 {
			if !setMin(&b.start, interval.CapSub(breakStartMin, limit.MaxInterbreakDuration)) {
				return false
			}
			if !setMax(&b.end, interval.CapAdd(breakEndMax, limit.MaxInterbreakDuration)) {
				return false
			}
		}
	}
	if !setMin(&b.span, lbSpan) {
		return false
	}
	// Push the span lower bound into start and end.
	if !setMax(&b.start, min(startMax, interval.CapSub(endMax, lbSpan))) {
		return false
	}
	return setMin(&b.end, max(endMin, interval.CapAdd(startMin, lbSpan)))
}
