package search

import (
	"math/rand"

	"github.com/katalvlaran/lvroute/instance"
	"github.com/katalvlaran/lvroute/pathstate"
)

// mover proposes neighbourhood moves as chain descriptions over the
// committed array, so that the checkers see long untouched chains.
// Every proposal returns the change of the unperformed penalty.
type mover struct {
	ps      *pathstate.PathState
	penalty []int64
	visits  []int // nodes that are no path terminal
}

func newMover(m *instance.Model) *mover {
	var (
		ps       = m.PathState
		terminal = make([]bool, ps.NumNodes())
		mv       = &mover{ps: ps, penalty: make([]int64, ps.NumNodes())}
		node     int
	)
	for p := 0; p < ps.NumPaths(); p++ {
		terminal[ps.Start(p)] = true
		terminal[ps.End(p)] = true
	}
	for node = range terminal {
		mv.penalty[node] = m.Instance.Nodes[node].Penalty
		if !terminal[node] {
			mv.visits = append(mv.visits, node)
		}
	}
	return mv
}

// propose describes one random move on ps. ok is false when the drawn move
// is a no-op; ps is then left unchanged.
func (mv *mover) propose(rng *rand.Rand) (penaltyDelta int64, ok bool) {
	if len(mv.visits) == 0 || mv.ps.NumPaths() == 0 {
		return 0, false
	}
	node := mv.visits[rng.Intn(len(mv.visits))]
	path := mv.ps.CommittedPath(node)
	if path < 0 {
		return mv.insert(rng, node)
	}
	switch r := rng.Intn(10); {
	case r < 6:
		return mv.relocate(rng, node, path)
	case r < 8:
		return mv.exchangeTails(rng, node, path)
	default:
		return mv.unperform(node, path)
	}
}

func single(idx int) pathstate.ChainBounds {
	return pathstate.ChainBounds{Begin: idx, End: idx + 1}
}

// insert puts an unperformed node after a random position of a random path.
func (mv *mover) insert(rng *rand.Rand, node int) (int64, bool) {
	var (
		path = rng.Intn(mv.ps.NumPaths())
		r    = mv.ps.CommittedPathRange(path)
		k    = r.Begin + rng.Intn(r.Len()-1) + 1 // first index after the insertion point
	)
	mv.ps.ChangePath(path,
		pathstate.ChainBounds{Begin: r.Begin, End: k},
		single(mv.ps.CommittedIndex(node)),
		pathstate.ChainBounds{Begin: k, End: r.End},
	)
	return -mv.penalty[node], true
}

// relocate moves node after a random position of a random path, possibly
// its own.
func (mv *mover) relocate(rng *rand.Rand, node, from int) (int64, bool) {
	var (
		to  = rng.Intn(mv.ps.NumPaths())
		idx = mv.ps.CommittedIndex(node)
		r   = mv.ps.CommittedPathRange(from)
	)
	if to != from {
		q := mv.ps.CommittedPathRange(to)
		k := q.Begin + rng.Intn(q.Len()-1) + 1
		mv.ps.ChangePath(from,
			pathstate.ChainBounds{Begin: r.Begin, End: idx},
			pathstate.ChainBounds{Begin: idx + 1, End: r.End},
		)
		mv.ps.ChangePath(to,
			pathstate.ChainBounds{Begin: q.Begin, End: k},
			single(idx),
			pathstate.ChainBounds{Begin: k, End: q.End},
		)
		return 0, true
	}

	// Within the path: node goes right before index k.
	k := r.Begin + rng.Intn(r.Len()-1) + 1
	switch {
	case k == idx || k == idx+1:
		return 0, false
	case k < idx:
		mv.ps.ChangePath(from,
			pathstate.ChainBounds{Begin: r.Begin, End: k},
			single(idx),
			pathstate.ChainBounds{Begin: k, End: idx},
			pathstate.ChainBounds{Begin: idx + 1, End: r.End},
		)
	default:
		mv.ps.ChangePath(from,
			pathstate.ChainBounds{Begin: r.Begin, End: idx},
			pathstate.ChainBounds{Begin: idx + 1, End: k},
			single(idx),
			pathstate.ChainBounds{Begin: k, End: r.End},
		)
	}
	return 0, true
}

// exchangeTails swaps what follows node on its path with what follows a
// random position of another path. Ends stay with their paths.
func (mv *mover) exchangeTails(rng *rand.Rand, node, p int) (int64, bool) {
	if mv.ps.NumPaths() < 2 {
		return 0, false
	}
	q := rng.Intn(mv.ps.NumPaths() - 1)
	if q >= p {
		q++
	}
	var (
		rp   = mv.ps.CommittedPathRange(p)
		rq   = mv.ps.CommittedPathRange(q)
		cutP = mv.ps.CommittedIndex(node) + 1
		cutQ = rq.Begin + rng.Intn(rq.Len()-1) + 1
	)
	if cutP == rp.End-1 && cutQ == rq.End-1 {
		return 0, false
	}
	mv.ps.ChangePath(p,
		pathstate.ChainBounds{Begin: rp.Begin, End: cutP},
		pathstate.ChainBounds{Begin: cutQ, End: rq.End - 1},
		single(rp.End-1),
	)
	mv.ps.ChangePath(q,
		pathstate.ChainBounds{Begin: rq.Begin, End: cutQ},
		pathstate.ChainBounds{Begin: cutP, End: rp.End - 1},
		single(rq.End-1),
	)
	return 0, true
}

// unperform takes node off its path and declares it a loop.
func (mv *mover) unperform(node, path int) (int64, bool) {
	var (
		r   = mv.ps.CommittedPathRange(path)
		idx = mv.ps.CommittedIndex(node)
	)
	mv.ps.ChangePath(path,
		pathstate.ChainBounds{Begin: r.Begin, End: idx},
		pathstate.ChainBounds{Begin: idx + 1, End: r.End},
	)
	mv.ps.ChangeLoops(node)
	return mv.penalty[node], true
}
