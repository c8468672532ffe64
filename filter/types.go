package filter

import (
	"errors"

	"go.uber.org/zap"
)

// Checker is the Check/Commit contract shared by every route checker.
type Checker interface {
	// Check reports whether the pending candidate is acceptable. It may be
	// called any number of times per candidate.
	Check() bool

	// Commit accepts the pending candidate. It runs before PathState.Commit.
	Commit()
}

// Relaxer is implemented by checkers whose working bounds must be reset
// before each Check.
type Relaxer interface {
	Relax()
}

// Sentinel errors.
var (
	// ErrNilPathState indicates a nil *pathstate.PathState.
	ErrNilPathState = errors.New("filter: nil path state")

	// ErrNilChecker indicates a nil Checker passed to Register.
	ErrNilChecker = errors.New("filter: nil checker")

	// ErrDuplicateName indicates a checker name registered twice.
	ErrDuplicateName = errors.New("filter: duplicate checker name")
)

// Stats counts candidates by outcome.
type Stats struct {
	Checked   int // calls to Check
	Invalid   int // candidates flagged with SetInvalid
	Rejected  int // candidates refused by a checker or the accept callback
	Committed int
	Reverted  int

	// RejectedBy counts refusals per checker name.
	RejectedBy map[string]int
}

// Options configures a Manager.
//
// Logger – receives Debug entries for rejections and commits.
//
//	Default is zap.NewNop().
type Options struct {
	Logger *zap.Logger
}

// Option represents a functional option for configuring a Manager.
type Option func(*Options)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// DefaultOptions returns the defaults: a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}
