package pathstate

import "iter"

// Chain is a view of committed indices [BeginIndex(), EndIndex()).
// It holds no node copy and stays meaningful until the next Commit.
type Chain struct {
	ps    *PathState
	begin int
	end   int
}

// BeginIndex returns the committed index of the first node.
func (c Chain) BeginIndex() int { return c.begin }

// EndIndex returns one past the committed index of the last node.
func (c Chain) EndIndex() int { return c.end }

// NumNodes returns the number of nodes of the chain.
func (c Chain) NumNodes() int { return c.end - c.begin }

// First returns the first node.
func (c Chain) First() int { return c.ps.committedNodes[c.begin] }

// Last returns the last node.
func (c Chain) Last() int { return c.ps.committedNodes[c.end-1] }

// Nodes iterates over the nodes of the chain in order.
func (c Chain) Nodes() iter.Seq[int] {
	return func(yield func(int) bool) {
		var nodes = c.ps.committedNodes
		for i := c.begin; i < c.end; i++ {
			if !yield(nodes[i]) {
				return
			}
		}
	}
}

// WithoutFirstNode iterates over every node but the first.
func (c Chain) WithoutFirstNode() iter.Seq[int] {
	return Chain{ps: c.ps, begin: c.begin + 1, end: c.end}.Nodes()
}

// ChainRange is the ordered chain sequence of one path.
type ChainRange struct {
	ps    *PathState
	begin int
	end   int
}

// Len returns the number of chains.
func (r ChainRange) Len() int { return r.end - r.begin }

// At returns the i-th chain, 0 ≤ i < Len().
func (r ChainRange) At(i int) Chain {
	var b = r.ps.chains[r.begin+i]
	return Chain{ps: r.ps, begin: b.Begin, end: b.End}
}

// All iterates over the chains in order.
func (r ChainRange) All() iter.Seq[Chain] {
	return func(yield func(Chain) bool) {
		for i := 0; i < r.Len(); i++ {
			if !yield(r.At(i)) {
				return
			}
		}
	}
}
