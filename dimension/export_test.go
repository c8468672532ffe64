package dimension

import "github.com/katalvlaran/lvroute/pathstate"

// UsesRIQ reports whether Check would answer chain of path with the RIQ.
func UsesRIQ(c *Checker, path int, chain pathstate.Chain) bool {
	_, ok := c.riqRange(path, chain)
	return ok
}
