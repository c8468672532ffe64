// Package routetest drives a PathState with random moves for the checker
// tests. It mirrors the routes as plain slices so tests can compare every
// checker against a straightforward evaluation of the same routes.
package routetest

import (
	"math/rand"
	"slices"

	"github.com/katalvlaran/lvroute/pathstate"
)

// Model mirrors the committed routes of a PathState.
type Model struct {
	Routes   [][]int
	NumNodes int

	ps       *pathstate.PathState
	terminal []bool
}

// Move is a candidate change expressed as full routes.
type Move struct {
	Routes  [][]int // next route of every path
	Changed []int   // paths whose route differs
	Loops   []int   // nodes leaving a path for good
}

// NewModel snapshots the committed routes of ps.
func NewModel(ps *pathstate.PathState) *Model {
	m := &Model{NumNodes: ps.NumNodes(), ps: ps, terminal: make([]bool, ps.NumNodes())}
	for p := 0; p < ps.NumPaths(); p++ {
		m.Routes = append(m.Routes, slices.Collect(ps.Nodes(p)))
		m.terminal[ps.Start(p)] = true
		m.terminal[ps.End(p)] = true
	}
	return m
}

// ChainsOf describes route as maximal runs of consecutive committed indices.
func ChainsOf(ps *pathstate.PathState, route []int) []pathstate.ChainBounds {
	var out []pathstate.ChainBounds
	for _, node := range route {
		idx := ps.CommittedIndex(node)
		if n := len(out); n > 0 && out[n-1].End == idx {
			out[n-1].End++
			continue
		}
		out = append(out, pathstate.ChainBounds{Begin: idx, End: idx + 1})
	}
	return out
}

// Loops returns the nodes that are on no route.
func (m *Model) Loops() []int {
	onPath := make([]bool, m.NumNodes)
	for _, r := range m.Routes {
		for _, n := range r {
			onPath[n] = true
		}
	}
	var out []int
	for n, on := range onPath {
		if !on {
			out = append(out, n)
		}
	}
	return out
}

// RandomMove proposes one of: insert a loop node, relocate a segment of a
// route (possibly into another route), drop an interior node, or splice a
// run of consecutive committed indices (see splice).
func (m *Model) RandomMove(rng *rand.Rand) Move {
	mv := Move{Routes: make([][]int, len(m.Routes))}
	for p, r := range m.Routes {
		mv.Routes[p] = slices.Clone(r)
	}
	changed := make(map[int]bool)
	loops := m.Loops()

	switch k := rng.Intn(12); {
	case k < 4 && len(loops) > 0:
		node := loops[rng.Intn(len(loops))]
		to := rng.Intn(len(mv.Routes))
		at := 1 + rng.Intn(len(mv.Routes[to])-1)
		mv.Routes[to] = slices.Insert(mv.Routes[to], at, node)
		changed[to] = true
	case k < 8:
		from := rng.Intn(len(mv.Routes))
		interior := len(mv.Routes[from]) - 2
		if interior <= 0 {
			break
		}
		i := 1 + rng.Intn(interior)
		j := i + rng.Intn(min(interior-i+1, 8))
		segment := slices.Clone(mv.Routes[from][i : j+1])
		mv.Routes[from] = slices.Delete(mv.Routes[from], i, j+1)
		changed[from] = true
		to := rng.Intn(len(mv.Routes))
		at := 1 + rng.Intn(len(mv.Routes[to])-1)
		mv.Routes[to] = slices.Insert(mv.Routes[to], at, segment...)
		changed[to] = true
	case k < 9:
		from := rng.Intn(len(mv.Routes))
		if len(mv.Routes[from]) <= 2 {
			break
		}
		i := 1 + rng.Intn(len(mv.Routes[from])-2)
		mv.Loops = append(mv.Loops, mv.Routes[from][i])
		mv.Routes[from] = slices.Delete(mv.Routes[from], i, i+1)
		changed[from] = true
	default:
		m.splice(rng, &mv, loops, changed)
	}
	for p := range mv.Routes {
		if changed[p] {
			mv.Changed = append(mv.Changed, p)
		}
	}
	return mv
}

// splice moves up to 8 non-terminal nodes found at consecutive live
// committed indices to a random position. Half of the time the run starts
// at a loop, so after a full commit of the PathState it is a run of loops
// whose nodes were indexed by the checkers in different commits.
func (m *Model) splice(rng *rand.Rand, mv *Move, loops []int, changed map[int]bool) {
	var (
		size  = m.ps.CommittedSize()
		begin = rng.Intn(size)
		run   []int
	)
	if len(loops) > 0 && rng.Intn(2) == 0 {
		begin = m.ps.CommittedIndex(loops[rng.Intn(len(loops))])
	}
	for i := begin; i < size && len(run) < 8; i++ {
		node := m.ps.CommittedNode(i)
		if m.terminal[node] || m.ps.CommittedIndex(node) != i {
			break
		}
		run = append(run, node)
	}
	if len(run) < 2 {
		return
	}
	inRun := func(n int) bool { return slices.Contains(run, n) }
	for p, r := range mv.Routes {
		if slices.ContainsFunc(r, inRun) {
			mv.Routes[p] = slices.DeleteFunc(r, inRun)
			changed[p] = true
		}
	}
	to := rng.Intn(len(mv.Routes))
	at := 1 + rng.Intn(len(mv.Routes[to])-1)
	mv.Routes[to] = slices.Insert(mv.Routes[to], at, run...)
	changed[to] = true
}

// LoopRuns counts the chains of the changed paths of ps that hold at least
// two nodes and start at a node that is on no committed path.
func LoopRuns(ps *pathstate.PathState) int {
	var count int
	for _, p := range ps.ChangedPaths() {
		for chain := range ps.Chains(p).All() {
			if chain.NumNodes() >= 2 && ps.CommittedPath(chain.First()) < 0 {
				count++
			}
		}
	}
	return count
}

// Apply describes mv on ps.
func (mv Move) Apply(ps *pathstate.PathState) {
	for _, p := range mv.Changed {
		ps.ChangePath(p, ChainsOf(ps, mv.Routes[p])...)
	}
	if len(mv.Loops) > 0 {
		ps.ChangeLoops(mv.Loops...)
	}
}

// Accept makes mv the mirrored state.
func (m *Model) Accept(mv Move) {
	m.Routes = mv.Routes
}

// Fill inserts every loop node into a random route, committing each
// insertion, so that later moves work on long committed chains.
func (m *Model) Fill(rng *rand.Rand, ps *pathstate.PathState, commit func()) {
	m.InsertLoops(rng, ps, commit, m.NumNodes)
}

// InsertLoops is Fill limited to count random loop nodes.
func (m *Model) InsertLoops(rng *rand.Rand, ps *pathstate.PathState, commit func(), count int) {
	loops := m.Loops()
	rng.Shuffle(len(loops), func(i, j int) { loops[i], loops[j] = loops[j], loops[i] })
	for _, node := range loops[:min(count, len(loops))] {
		mv := Move{Routes: make([][]int, len(m.Routes))}
		for p, r := range m.Routes {
			mv.Routes[p] = slices.Clone(r)
		}
		to := rng.Intn(len(mv.Routes))
		at := 1 + rng.Intn(len(mv.Routes[to])-1)
		mv.Routes[to] = slices.Insert(mv.Routes[to], at, node)
		mv.Changed = []int{to}
		mv.Apply(ps)
		commit()
		m.Accept(mv)
	}
}
