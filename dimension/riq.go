package dimension

import (
	"sort"

	"github.com/katalvlaran/lvroute/interval"
)

// appendPath pushes the current route of path as one RIQ batch.
//
// conf is computed with two monotonic stacks: uStack keeps the positions
// whose u is not dominated by a later position (u strictly decreasing from
// bottom to top), zStack likewise for z (strictly increasing). The latest
// position e with u_e > w_t is then the top of the prefix of uStack whose
// u exceeds w_t, found by binary search.
func (c *Checker) appendPath(path int) {
	var (
		capacity   = c.pathCapacity[path]
		demand     = c.demand[c.pathClass[path]]
		pmin, pmax interval.ExtendedValue
		prev       = -1
		exact      = true
		k          int
	)
	c.uStack = c.uStack[:0]
	c.zStack = c.zStack[:0]
	c.records = c.records[:0]
	base := c.riq.Len()
	c.batchStart[path] = base

	for node := range c.ps.Nodes(path) {
		var (
			pos         = base + len(c.records)
			emptyDemand bool
		)
		if prev >= 0 {
			d := interval.ToExtended(demand(prev, node))
			emptyDemand = d.IsEmpty()
			pmin = pmin.Add(d.Lower())
			pmax = pmax.Add(d.Upper())
		}
		nodeCap := c.nodeCapacity[node].Intersect(capacity)
		rec := riqRecord{
			maxU: nodeCap.Lower().Sub(pmin),
			minW: nodeCap.Upper().Sub(pmin),
			maxY: nodeCap.Lower().Sub(pmax),
			minZ: nodeCap.Upper().Sub(pmax),
			conf: -1,
		}
		c.records = append(c.records, rec)
		exact = exact && bounded(pmin, pmax, rec.maxU, rec.minW, rec.maxY, rec.minZ)

		for len(c.uStack) > 0 && c.recordAt(base, c.uStack[len(c.uStack)-1]).maxU.LessEq(rec.maxU) {
			c.uStack = c.uStack[:len(c.uStack)-1]
		}
		c.uStack = append(c.uStack, pos)
		for len(c.zStack) > 0 && rec.minZ.LessEq(c.recordAt(base, c.zStack[len(c.zStack)-1]).minZ) {
			c.zStack = c.zStack[:len(c.zStack)-1]
		}
		c.zStack = append(c.zStack, pos)

		if emptyDemand {
			rec.conf = pos
		} else {
			k = sort.Search(len(c.uStack), func(i int) bool {
				return c.recordAt(base, c.uStack[i]).maxU.LessEq(rec.minW)
			})
			if k > 0 {
				rec.conf = max(rec.conf, c.uStack[k-1])
			}
			k = sort.Search(len(c.zStack), func(i int) bool {
				return !c.recordAt(base, c.zStack[i]).minZ.Less(rec.maxY)
			})
			if k > 0 {
				rec.conf = max(rec.conf, c.zStack[k-1])
			}
		}
		c.records[len(c.records)-1].conf = rec.conf

		c.riq.PushBack(rec)
		c.prefix = append(c.prefix, prefixEntry{pmin: pmin, pmax: pmax, exact: exact})
		prev = node
	}
	c.riq.MakeTableFromNewElements()
}

func (c *Checker) recordAt(base, pos int) *riqRecord {
	return &c.records[pos-base]
}

// propagate moves cumul, the interval at RIQ position f after intersection
// with its capacity, to position l of the same batch.
//
// With a = cumul.min and b = cumul.max the cumul range at l is
//
//	[max(a + Pmin_l − Pmin_f, Pmin_l + max u), min(b + Pmax_l − Pmax_f, Pmax_l + min z)]
//
// over (f, l], and it is non-empty at every position iff no conflict lies in
// (f, l], a ≤ Pmin_f + min w and b ≥ Pmax_f + max y.
func (c *Checker) propagate(cumul interval.ExtendedInterval, f, l int) (interval.ExtendedInterval, bool) {
	var (
		rec    = c.riq.Query(f+1, l+1)
		pf, pl = c.prefix[f], c.prefix[l]
		a, b   = cumul.Lower(), cumul.Upper()
	)
	if rec.conf > f {
		return cumul, false
	}
	if pf.pmin.Add(rec.minW).Less(a) || b.Less(pf.pmax.Add(rec.maxY)) {
		return cumul, false
	}
	lo := interval.MaxOf(a.Add(pl.pmin).Sub(pf.pmin), pl.pmin.Add(rec.maxU))
	hi := interval.MinOf(b.Add(pl.pmax).Sub(pf.pmax), pl.pmax.Add(rec.minZ))
	return interval.FromBounds(lo, hi), true
}
