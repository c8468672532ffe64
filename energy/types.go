package energy

import "errors"

// minCommitThreshold is the smallest table size that triggers a full rebuild.
const minCommitThreshold = 16

// ForceFunc returns the force change applied at node.
type ForceFunc func(node int) int64

// DistanceFunc returns the distance of arc from → to.
type DistanceFunc func(from, to int) int64

// EnergyCost prices the energy of one path.
//
// The energy of an arc is force · distance. The part of the force up to
// Threshold is paid CostPerUnitBelowThreshold per unit of energy, the part
// above it CostPerUnitAboveThreshold.
type EnergyCost struct {
	Threshold                 int64 `yaml:"threshold"`
	CostPerUnitBelowThreshold int64 `yaml:"cost_below"`
	CostPerUnitAboveThreshold int64 `yaml:"cost_above"`
}

// IsNull reports whether the cost is zero whatever the energy.
func (e EnergyCost) IsNull() bool {
	return e.CostPerUnitBelowThreshold == 0 && e.CostPerUnitAboveThreshold == 0
}

// Config holds the immutable data of the energy cost.
type Config struct {
	// ForceStartMin and ForceEndMin bound the force at the start and end of path p.
	ForceStartMin []int64
	ForceEndMin   []int64

	// ForceClass maps path p to an index of ForcePerClass.
	ForceClass    []int
	ForcePerClass []ForceFunc

	// DistanceClass maps path p to an index of DistancePerClass.
	DistanceClass    []int
	DistancePerClass []DistanceFunc

	PathEnergyCost []EnergyCost

	// PathHasCostWhenEmpty charges a path even when it only holds start → end.
	PathHasCostWhenEmpty []bool
}

// Sentinel errors returned by NewChecker.
var (
	// ErrNilPathState indicates a nil *pathstate.PathState.
	ErrNilPathState = errors.New("energy: nil path state")

	// ErrPathCountMismatch indicates per-path data of the wrong length.
	ErrPathCountMismatch = errors.New("energy: per-path data does not match the number of paths")

	// ErrUnknownClass indicates a force or distance class out of range.
	ErrUnknownClass = errors.New("energy: unknown class")

	// ErrNilFunc indicates a nil force or distance function.
	ErrNilFunc = errors.New("energy: nil force or distance function")

	// ErrNegativeCost indicates a negative cost per unit.
	ErrNegativeCost = errors.New("energy: negative cost per unit")
)

const panicCommitWithoutCheck = "energy: Commit called without Check on the current candidate"
