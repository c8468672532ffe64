package dimension

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvroute/interval"
)

// DefaultMinRangeSizeForRIQ is the chain length from which a RIQ lookup is
// used instead of a direct scan.
const DefaultMinRangeSizeForRIQ = 4

// minCommitThreshold is the smallest RIQ size that triggers a full rebuild.
const minCommitThreshold = 16

// DemandFunc returns the demand interval of arc from → to.
// An empty interval (Min > Max) makes every path using the arc infeasible.
type DemandFunc func(from, to int) interval.Interval

// Config holds the immutable data of one dimension.
type Config struct {
	// PathCapacity bounds the cumul of every node of path p.
	PathCapacity []interval.Interval

	// PathClass maps path p to an index of DemandPerClass.
	PathClass []int

	// DemandPerClass holds one demand function per vehicle class.
	DemandPerClass []DemandFunc

	// NodeCapacity bounds the cumul of node n; len must equal the number of nodes.
	NodeCapacity []interval.Interval

	// MinRangeSizeForRIQ is the chain length from which the RIQ is used.
	// Zero selects DefaultMinRangeSizeForRIQ.
	MinRangeSizeForRIQ int
}

// Sentinel errors returned by NewChecker.
var (
	// ErrNilPathState indicates a nil *pathstate.PathState.
	ErrNilPathState = errors.New("dimension: nil path state")

	// ErrPathCountMismatch indicates PathCapacity or PathClass of the wrong length.
	ErrPathCountMismatch = errors.New("dimension: per-path data does not match the number of paths")

	// ErrNodeCountMismatch indicates NodeCapacity of the wrong length.
	ErrNodeCountMismatch = errors.New("dimension: node capacities do not match the number of nodes")

	// ErrEmptyCapacity indicates a path capacity with Min > Max.
	ErrEmptyCapacity = errors.New("dimension: empty path capacity")

	// ErrUnknownClass indicates a PathClass outside DemandPerClass.
	ErrUnknownClass = errors.New("dimension: unknown vehicle class")

	// ErrNilDemand indicates a nil demand function.
	ErrNilDemand = errors.New("dimension: nil demand function")

	// ErrNegativeRangeSize indicates MinRangeSizeForRIQ < 0.
	ErrNegativeRangeSize = errors.New("dimension: negative minimum range size")
)

// riqRecord is the idempotent part of one RIQ position t, with c the node
// capacity intersected with the path capacity and Pmin/Pmax the prefix sums
// of demand bounds:
//
//	u = c.min − Pmin   w = c.max − Pmin   y = c.min − Pmax   z = c.max − Pmax
//
// conf is the largest position e ≤ t of the same path such that a cumul
// entering at any position before e cannot reach t, or −1.
type riqRecord struct {
	maxU, minW interval.ExtendedValue
	maxY, minZ interval.ExtendedValue
	conf       int
}

func combineRecords(a, b riqRecord) riqRecord {
	return riqRecord{
		maxU: interval.MaxOf(a.maxU, b.maxU),
		minW: interval.MinOf(a.minW, b.minW),
		maxY: interval.MaxOf(a.maxY, b.maxY),
		minZ: interval.MinOf(a.minZ, b.minZ),
		conf: max(a.conf, b.conf),
	}
}

// maxExactMagnitude bounds the finite parts a RIQ lookup may combine. A
// lookup adds or subtracts at most three such terms, which stays clear of
// int64 saturation.
const maxExactMagnitude = math.MaxInt64 / 4

// prefixEntry holds the additive part of one RIQ position. Sums are never
// combined across windows; they are recovered by subtraction.
// exact is false once any prefix or record of the batch up to this position
// exceeds maxExactMagnitude; such positions are scanned.
type prefixEntry struct {
	pmin, pmax interval.ExtendedValue
	exact      bool
}

func bounded(values ...interval.ExtendedValue) bool {
	for _, v := range values {
		if v.Value < -maxExactMagnitude || v.Value > maxExactMagnitude {
			return false
		}
	}
	return true
}
