package dimension_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvroute/dimension"
	"github.com/katalvlaran/lvroute/internal/routetest"
	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
)

// scanRoute is the reference propagation over a full route.
func scanRoute(route []int, pathCap interval.Interval, nodeCap []interval.Interval, demand dimension.DemandFunc) bool {
	var (
		capacity = interval.ToExtended(pathCap)
		cumul    = capacity.Intersect(interval.ToExtended(nodeCap[route[0]]))
	)
	if cumul.IsEmpty() {
		return false
	}
	for i := 1; i < len(route); i++ {
		d := demand(route[i-1], route[i])
		if d.IsEmpty() {
			return false
		}
		cumul = cumul.Add(interval.ToExtended(d)).
			Intersect(interval.ToExtended(nodeCap[route[i]])).
			Intersect(capacity)
		if cumul.IsEmpty() {
			return false
		}
	}
	return true
}

// scanConstant simulates a constant demand with plain integers.
func scanConstant(route []int, pathCap interval.Interval, nodeCap []interval.Interval, q int64) bool {
	lo, hi := max(pathCap.Min, nodeCap[route[0]].Min), min(pathCap.Max, nodeCap[route[0]].Max)
	if lo > hi {
		return false
	}
	for _, node := range route[1:] {
		lo = max(lo+q, nodeCap[node].Min, pathCap.Min)
		hi = min(hi+q, nodeCap[node].Max, pathCap.Max)
		if lo > hi {
			return false
		}
	}
	return true
}

type CheckerSuite struct {
	suite.Suite
	rng *rand.Rand
}

func (s *CheckerSuite) SetupTest() {
	s.rng = rand.New(rand.NewSource(2024))
}

func (s *CheckerSuite) TestConfigErrors() {
	ps, err := pathstate.New(4, []int{0}, []int{1})
	require.NoError(s.T(), err)
	zero := func(int, int) interval.Interval { return interval.Point(0) }
	good := dimension.Config{
		PathCapacity:   []interval.Interval{interval.Unbounded()},
		PathClass:      []int{0},
		DemandPerClass: []dimension.DemandFunc{zero},
		NodeCapacity:   make([]interval.Interval, 4),
	}
	_, err = dimension.NewChecker(ps, good)
	require.NoError(s.T(), err)

	_, err = dimension.NewChecker(nil, good)
	require.ErrorIs(s.T(), err, dimension.ErrNilPathState)

	bad := good
	bad.PathClass = nil
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrPathCountMismatch)

	bad = good
	bad.NodeCapacity = bad.NodeCapacity[:3]
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrNodeCountMismatch)

	bad = good
	bad.PathCapacity = []interval.Interval{{Min: 3, Max: 2}}
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrEmptyCapacity)

	bad = good
	bad.PathClass = []int{1}
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrUnknownClass)

	bad = good
	bad.DemandPerClass = []dimension.DemandFunc{nil}
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrNilDemand)

	bad = good
	bad.MinRangeSizeForRIQ = -1
	_, err = dimension.NewChecker(ps, bad)
	require.ErrorIs(s.T(), err, dimension.ErrNegativeRangeSize)
}

// TestCapacityLiteral: load 5 per arc, node 4 only accepts loads in [0, 3].
func (s *CheckerSuite) TestCapacityLiteral() {
	ps, err := pathstate.New(6, []int{0, 2}, []int{1, 3})
	require.NoError(s.T(), err)
	caps := []interval.Interval{
		interval.Point(0), {Min: 0, Max: 100}, interval.Point(0), {Min: 0, Max: 100},
		{Min: 0, Max: 3}, {Min: 5, Max: 5},
	}
	five := func(int, int) interval.Interval { return interval.Point(5) }
	c, err := dimension.NewChecker(ps, dimension.Config{
		PathCapacity:   []interval.Interval{{Min: 0, Max: 100}, {Min: 0, Max: 8}},
		PathClass:      []int{0, 0},
		DemandPerClass: []dimension.DemandFunc{five},
		NodeCapacity:   caps,
	})
	require.NoError(s.T(), err)
	require.True(s.T(), c.Check())

	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 4, 1})...)
	require.False(s.T(), c.Check())
	ps.Revert()

	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 5, 1})...)
	require.True(s.T(), c.Check())
	ps.Revert()

	// Path 1 is capped at 8: 0 → 5 → 10 overflows at its end.
	ps.ChangePath(1, routetest.ChainsOf(ps, []int{2, 5, 3})...)
	require.False(s.T(), c.Check())
	ps.Revert()

	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 4, 1})...)
	ps.SetInvalid()
	require.True(s.T(), c.Check(), "invalid candidates are rejected by the caller")
	ps.Revert()
}

// TestEmptyDemand: an arc with an empty demand interval is never usable.
func (s *CheckerSuite) TestEmptyDemand() {
	ps, err := pathstate.New(3, []int{0}, []int{1})
	require.NoError(s.T(), err)
	demand := func(from, to int) interval.Interval {
		if from == 2 && to == 1 {
			return interval.Interval{Min: 1, Max: 0}
		}
		return interval.Point(1)
	}
	c, err := dimension.NewChecker(ps, dimension.Config{
		PathCapacity:   []interval.Interval{interval.Unbounded()},
		PathClass:      []int{0},
		DemandPerClass: []dimension.DemandFunc{demand},
		NodeCapacity:   []interval.Interval{interval.Unbounded(), interval.Unbounded(), interval.Unbounded()},
	})
	require.NoError(s.T(), err)
	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 2, 1})...)
	require.False(s.T(), c.Check())
}

// TestConstantDemandAgainstSimulation compares Check with a plain integer
// simulation on random routes of at most 20 nodes with demand [5, 5].
func (s *CheckerSuite) TestConstantDemandAgainstSimulation() {
	const (
		numNodes = 20
		numPaths = 3
	)
	for trial := 0; trial < 20; trial++ {
		ps, err := pathstate.New(numNodes, []int{0, 2, 4}, []int{1, 3, 5})
		require.NoError(s.T(), err)
		nodeCap := make([]interval.Interval, numNodes)
		for n := range nodeCap {
			lo := int64(s.rng.Intn(60))
			nodeCap[n] = interval.Interval{Min: lo, Max: lo + int64(s.rng.Intn(400))}
		}
		pathCap := []interval.Interval{{Min: 0, Max: 1000}, {Min: 0, Max: 1000}, {Min: 0, Max: 1000}}
		five := func(int, int) interval.Interval { return interval.Point(5) }
		c, err := dimension.NewChecker(ps, dimension.Config{
			PathCapacity:       pathCap,
			PathClass:          []int{0, 0, 0},
			DemandPerClass:     []dimension.DemandFunc{five},
			NodeCapacity:       nodeCap,
			MinRangeSizeForRIQ: 2,
		})
		require.NoError(s.T(), err)

		model := routetest.NewModel(ps)
		model.Fill(s.rng, ps, func() { c.Commit(); ps.Commit() })

		for step := 0; step < 60; step++ {
			mv := model.RandomMove(s.rng)
			mv.Apply(ps)
			want := true
			for _, p := range mv.Changed {
				want = want && scanConstant(mv.Routes[p], pathCap[p], nodeCap, 5)
			}
			require.Equal(s.T(), want, c.Check(), "trial %d step %d routes %v", trial, step, mv.Routes)
			if s.rng.Intn(2) == 0 {
				c.Commit()
				ps.Commit()
				model.Accept(mv)
			} else {
				ps.Revert()
			}
		}
	}
}

// scanFixture pits a RIQ checker against a scan-only checker on unbounded
// and empty demands, mixed classes and capacities.
type scanFixture struct {
	ps         *pathstate.PathState
	fast, slow *dimension.Checker
	pathCap    []interval.Interval
	pathClass  []int
	nodeCap    []interval.Interval
	demand     []dimension.DemandFunc
	model      *routetest.Model
}

func (s *CheckerSuite) newScanFixture(numNodes int) *scanFixture {
	const numClasses = 2
	starts, ends := []int{0, 2, 4, 6}, []int{1, 3, 5, 7}

	randomBound := func() interval.Interval {
		lo := int64(s.rng.Intn(40) - 10)
		iv := interval.Interval{Min: lo, Max: lo + int64(s.rng.Intn(120))}
		if s.rng.Intn(6) == 0 {
			iv.Min = math.MinInt64
		}
		if s.rng.Intn(6) == 0 {
			iv.Max = math.MaxInt64
		}
		return iv
	}
	demands := make([][][]interval.Interval, numClasses)
	for k := range demands {
		demands[k] = make([][]interval.Interval, numNodes)
		for i := range demands[k] {
			demands[k][i] = make([]interval.Interval, numNodes)
			for j := range demands[k][i] {
				lo := int64(s.rng.Intn(9) - 3)
				d := interval.Interval{Min: lo, Max: lo + int64(s.rng.Intn(5))}
				switch s.rng.Intn(40) {
				case 0, 1, 2:
					d.Min = math.MinInt64
				case 3, 4, 5:
					d.Max = math.MaxInt64
				case 6:
					d = interval.Interval{Min: 1, Max: 0}
				}
				demands[k][i][j] = d
			}
		}
	}
	fx := &scanFixture{
		// Paths 0 and 2 share class and capacity, so their cached data is interchangeable.
		pathCap:   []interval.Interval{{Min: -20, Max: 80}, interval.Unbounded(), {Min: -20, Max: 80}, {Min: 0, Max: 50}},
		pathClass: []int{0, 1, 0, 0},
		nodeCap:   make([]interval.Interval, numNodes),
		demand:    make([]dimension.DemandFunc, numClasses),
	}
	for k := range fx.demand {
		table := demands[k]
		fx.demand[k] = func(from, to int) interval.Interval { return table[from][to] }
	}
	for n := range fx.nodeCap {
		fx.nodeCap[n] = randomBound()
	}
	for n := 0; n < 2*len(starts); n++ {
		fx.nodeCap[n] = interval.Unbounded()
	}

	var err error
	fx.ps, err = pathstate.New(numNodes, starts, ends)
	require.NoError(s.T(), err)
	cfg := dimension.Config{
		PathCapacity:       fx.pathCap,
		PathClass:          fx.pathClass,
		DemandPerClass:     fx.demand,
		NodeCapacity:       fx.nodeCap,
		MinRangeSizeForRIQ: 2,
	}
	fx.fast, err = dimension.NewChecker(fx.ps, cfg)
	require.NoError(s.T(), err)
	cfg.MinRangeSizeForRIQ = math.MaxInt32
	fx.slow, err = dimension.NewChecker(fx.ps, cfg)
	require.NoError(s.T(), err)
	fx.model = routetest.NewModel(fx.ps)
	return fx
}

func (fx *scanFixture) commit() { fx.fast.Commit(); fx.slow.Commit(); fx.ps.Commit() }

// run proposes random moves, compares both checkers with the reference
// propagation and commits two moves out of three.
func (s *CheckerSuite) run(fx *scanFixture, steps int) (riqChains, loopRuns, feasible int) {
	for step := 0; step < steps; step++ {
		mv := fx.model.RandomMove(s.rng)
		mv.Apply(fx.ps)
		loopRuns += routetest.LoopRuns(fx.ps)
		want := true
		for _, p := range mv.Changed {
			want = want && scanRoute(mv.Routes[p], fx.pathCap[p], fx.nodeCap, fx.demand[fx.pathClass[p]])
			for chain := range fx.ps.Chains(p).All() {
				if dimension.UsesRIQ(fx.fast, p, chain) {
					riqChains++
				}
			}
		}
		require.Equal(s.T(), want, fx.slow.Check(), "scan, step %d", step)
		require.Equal(s.T(), want, fx.fast.Check(), "riq, step %d routes %v", step, mv.Routes)
		if want {
			feasible++
		}
		if s.rng.Intn(3) > 0 {
			fx.commit()
			fx.model.Accept(mv)
		} else {
			fx.ps.Revert()
		}
		if step%300 == 0 {
			for p := range fx.model.Routes {
				require.Equal(s.T(), fx.model.Routes[p], collect(fx.ps, p))
			}
		}
	}
	return riqChains, loopRuns, feasible
}

// TestRandomIntervalsAgainstScan works on routes holding every node.
func (s *CheckerSuite) TestRandomIntervalsAgainstScan() {
	fx := s.newScanFixture(40)
	fx.model.Fill(s.rng, fx.ps, fx.commit)
	riqChains, _, feasible := s.run(fx, 1500)
	require.Positive(s.T(), riqChains)
	require.Positive(s.T(), feasible)
}

// TestLoopRunsAgainstScan keeps half of the nodes off the routes, so that
// candidates often hold chains of loops laid out by earlier full commits.
func (s *CheckerSuite) TestLoopRunsAgainstScan() {
	fx := s.newScanFixture(40)
	fx.model.InsertLoops(s.rng, fx.ps, fx.commit, 16)
	riqChains, loopRuns, _ := s.run(fx, 1500)
	require.Positive(s.T(), riqChains)
	require.Positive(s.T(), loopRuns)
}

// TestStaleLoopChain: nodes 4..7 go on and off the routes until a full
// commit lays them out as one run of loops. A chain over that run was
// indexed by different commits and must be scanned.
func (s *CheckerSuite) TestStaleLoopChain() {
	ps, err := pathstate.New(8, []int{0, 2}, []int{1, 3})
	require.NoError(s.T(), err)
	nodeCap := make([]interval.Interval, 8)
	for n := range nodeCap {
		nodeCap[n] = interval.Interval{Min: 1000, Max: 2000}
	}
	zero := func(int, int) interval.Interval { return interval.Point(0) }
	c, err := dimension.NewChecker(ps, dimension.Config{
		PathCapacity:       []interval.Interval{interval.Unbounded(), interval.Unbounded()},
		PathClass:          []int{0, 0},
		DemandPerClass:     []dimension.DemandFunc{zero},
		NodeCapacity:       nodeCap,
		MinRangeSizeForRIQ: 2,
	})
	require.NoError(s.T(), err)
	commit := func() { require.True(s.T(), c.Check()); c.Commit(); ps.Commit() }

	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 4, 1})...)
	ps.ChangePath(1, routetest.ChainsOf(ps, []int{2, 7, 3})...)
	commit()
	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 1})...)
	ps.ChangePath(1, routetest.ChainsOf(ps, []int{2, 3})...)
	ps.ChangeLoops(4, 7)
	commit()
	// Rewrite path 0 unchanged until the committed array is compacted.
	for i := 0; ps.CommittedIndex(7) != 7; i++ {
		require.Less(s.T(), i, 100)
		ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 1})...)
		commit()
	}
	for n := 4; n < 8; n++ {
		require.Equal(s.T(), n, ps.CommittedIndex(n))
	}

	route := []int{0, 4, 5, 6, 7, 1}
	chains := routetest.ChainsOf(ps, route)
	require.Len(s.T(), chains, 3)
	ps.ChangePath(0, chains...)
	require.False(s.T(), dimension.UsesRIQ(c, 0, ps.Chains(0).At(1)))
	require.True(s.T(), c.Check())
	c.Commit()
	ps.Commit()

	// Once committed on path 0 the same nodes form an indexed slice.
	ps.ChangePath(1, routetest.ChainsOf(ps, []int{2, 4, 5, 6, 3})...)
	ps.ChangePath(0, routetest.ChainsOf(ps, []int{0, 7, 1})...)
	require.True(s.T(), dimension.UsesRIQ(c, 1, ps.Chains(1).At(1)))
	require.True(s.T(), c.Check())
	ps.Revert()
}

// TestLargeMagnitudes: demands near the int64 limits saturate instead of
// wrapping, and indexed chains whose sums leave the exact range are scanned.
func (s *CheckerSuite) TestLargeMagnitudes() {
	const big = int64(1) << 62
	tests := []struct {
		name   string
		demand interval.Interval
		want   bool
	}{
		{"range reaching the cap", interval.Interval{Min: 0, Max: big}, true},
		{"point past the cap", interval.Point(big), false},
	}
	for _, tt := range tests {
		ps, err := pathstate.New(6, []int{0}, []int{5})
		require.NoError(s.T(), err)
		nodeCap := make([]interval.Interval, 6)
		for n := range nodeCap {
			nodeCap[n] = interval.Interval{Min: 0, Max: math.MaxInt64 - 1}
		}
		demand := tt.demand
		demandFn := func(int, int) interval.Interval { return demand }
		c, err := dimension.NewChecker(ps, dimension.Config{
			PathCapacity:       []interval.Interval{interval.Unbounded()},
			PathClass:          []int{0},
			DemandPerClass:     []dimension.DemandFunc{demandFn},
			NodeCapacity:       nodeCap,
			MinRangeSizeForRIQ: 2,
		})
		require.NoError(s.T(), err)

		route := []int{0, 1, 2, 3, 4, 5}
		ps.ChangePath(0, routetest.ChainsOf(ps, route)...)
		require.Equal(s.T(), tt.want, c.Check(), tt.name)
		c.Commit()
		ps.Commit()

		ps.ChangePath(0, routetest.ChainsOf(ps, route)...)
		require.True(s.T(), dimension.UsesRIQ(c, 0, ps.Chains(0).At(0)), tt.name)
		require.Equal(s.T(), tt.want, c.Check(), tt.name)
		require.Equal(s.T(), tt.want, scanRoute(route, interval.Unbounded(), nodeCap, demandFn), tt.name)
		ps.Revert()
	}
}

func collect(ps *pathstate.PathState, path int) []int {
	var out []int
	for n := range ps.Nodes(path) {
		out = append(out, n)
	}
	return out
}

// Entry point for running the suite.
func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}
