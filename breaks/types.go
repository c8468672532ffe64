package breaks

import (
	"errors"

	"github.com/katalvlaran/lvroute/interval"
)

// TransitFunc returns the minimal transit of arc from → to.
type TransitFunc func(from, to int) int64

// VehicleBreak is one optional break of a vehicle.
type VehicleBreak struct {
	Start    interval.Interval `yaml:"start"`
	End      interval.Interval `yaml:"end"`
	Duration interval.Interval `yaml:"duration"`

	// IsPerformedMin forces the break; !IsPerformedMax forbids it.
	IsPerformedMin bool `yaml:"required"`
	IsPerformedMax bool `yaml:"-"`
}

// InterbreakLimit requires a break of at least MinBreakDuration every
// MaxInterbreakDuration units of transit.
type InterbreakLimit struct {
	MaxInterbreakDuration int64 `yaml:"max_interbreak"`
	MinBreakDuration      int64 `yaml:"min_break"`
}

// PathData holds the breaks and the initial bounds of one path.
type PathData struct {
	VehicleBreaks    []VehicleBreak
	InterbreakLimits []InterbreakLimit

	// Initial domains; Relax resets the working bounds to them.
	StartCumul   interval.Interval
	EndCumul     interval.Interval
	TotalTransit interval.Interval
	Span         interval.Interval

	// Transit, when set, gives a lower bound of TotalTransit from the route.
	Transit TransitFunc
}

// Sentinel errors returned by NewChecker.
var (
	// ErrNilPathState indicates a nil *pathstate.PathState.
	ErrNilPathState = errors.New("breaks: nil path state")

	// ErrPathCountMismatch indicates a number of PathData different from the number of paths.
	ErrPathCountMismatch = errors.New("breaks: path data does not match the number of paths")

	// ErrEmptyDomain indicates an empty initial start, end, transit or span domain.
	ErrEmptyDomain = errors.New("breaks: empty initial domain")

	// ErrNegativeInterbreak indicates a negative interbreak limit or break duration.
	ErrNegativeInterbreak = errors.New("breaks: negative interbreak limit")
)

// bounds are the cumul-related bounds of one path.
type bounds struct {
	start interval.Interval
	end   interval.Interval
	span  interval.Interval
}

// setMin raises iv.Min to v and reports whether iv stays non-empty.
func setMin(iv *interval.Interval, v int64) bool {
	iv.Min = max(iv.Min, v)
	return !iv.IsEmpty()
}

// setMax lowers iv.Max to v and reports whether iv stays non-empty.
func setMax(iv *interval.Interval, v int64) bool {
	iv.Max = min(iv.Max, v)
	return !iv.IsEmpty()
}
