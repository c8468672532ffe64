package pathstate

import "errors"

// Special values returned by Path.
const (
	// Loop marks a node that is on no path.
	Loop = -1

	// Unassigned marks a node removed from a changed path without being
	// declared a loop in the same change.
	Unassigned = -2
)

// minCommitThreshold is the smallest committed-array size that triggers a full commit.
const minCommitThreshold = 16

// Sentinel errors returned by New.
var (
	// ErrTerminalsMismatch indicates len(pathStart) != len(pathEnd).
	ErrTerminalsMismatch = errors.New("pathstate: path starts and ends differ in length")

	// ErrNodeOutOfRange indicates a start or end outside [0, numNodes).
	ErrNodeOutOfRange = errors.New("pathstate: node out of range")

	// ErrDuplicateTerminal indicates a node used as start or end more than once.
	ErrDuplicateTerminal = errors.New("pathstate: node used as a terminal twice")

	// ErrNegativeNodeCount indicates numNodes < 0.
	ErrNegativeNodeCount = errors.New("pathstate: negative number of nodes")
)

const panicCommitInvalid = "pathstate: Commit called on an invalid candidate"

// ChainBounds is the half-open range [Begin, End) of committed indices.
type ChainBounds struct {
	Begin int
	End   int
}

// Len returns End − Begin.
func (b ChainBounds) Len() int {
	return b.End - b.Begin
}

// pathBounds is the half-open range of a path's chains in PathState.chains.
type pathBounds struct {
	begin int
	end   int
}
