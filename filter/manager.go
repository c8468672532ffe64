package filter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvroute/pathstate"
)

type namedChecker struct {
	name    string
	checker Checker
	relaxer Relaxer // nil when checker has no Relax
}

// Manager runs the checkers of one PathState in the mandated order:
// Check on every checker, then either every Commit followed by
// PathState.Commit, or PathState.Revert.
type Manager struct {
	ps       *pathstate.PathState
	checkers []namedChecker
	logger   *zap.Logger
	stats    Stats
}

// NewManager returns a Manager without checkers.
func NewManager(ps *pathstate.PathState, opts ...Option) (*Manager, error) {
	if ps == nil {
		return nil, ErrNilPathState
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		ps:     ps,
		logger: o.Logger,
		stats:  Stats{RejectedBy: make(map[string]int)},
	}, nil
}

// Register appends a checker. Checkers run in registration order, so cheap
// and selective ones should come first.
func (m *Manager) Register(name string, c Checker) error {
	if c == nil {
		return ErrNilChecker
	}
	for _, nc := range m.checkers {
		if nc.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	nc := namedChecker{name: name, checker: c}
	if r, ok := c.(Relaxer); ok {
		nc.relaxer = r
	}
	m.checkers = append(m.checkers, nc)
	return nil
}

// PathState returns the managed PathState.
func (m *Manager) PathState() *pathstate.PathState { return m.ps }

// Stats returns a copy of the counters.
func (m *Manager) Stats() Stats {
	s := m.stats
	s.RejectedBy = make(map[string]int, len(m.stats.RejectedBy))
	for k, v := range m.stats.RejectedBy {
		s.RejectedBy[k] = v
	}
	return s
}

// Check reports whether the pending candidate passes every checker. Invalid
// candidates are refused without consulting the checkers; otherwise every
// Relaxer is relaxed and the checkers run until the first refusal.
func (m *Manager) Check() bool {
	m.stats.Checked++
	if m.ps.IsInvalid() {
		m.stats.Invalid++
		m.logger.Debug("candidate flagged invalid")
		return false
	}
	for _, nc := range m.checkers {
		if nc.relaxer != nil {
			nc.relaxer.Relax()
		}
	}
	for _, nc := range m.checkers {
		if !nc.checker.Check() {
			m.stats.RejectedBy[nc.name]++
			m.logger.Debug("candidate rejected",
				zap.String("checker", nc.name),
				zap.Ints("paths", m.ps.ChangedPaths()))
			return false
		}
	}
	return true
}

// Commit accepts the pending candidate on every checker, then on the
// PathState. Call it only after Check returned true.
func (m *Manager) Commit() {
	for _, nc := range m.checkers {
		nc.checker.Commit()
	}
	m.logger.Debug("candidate committed",
		zap.Ints("paths", m.ps.ChangedPaths()),
		zap.Int("loops", len(m.ps.ChangedLoops())))
	m.ps.Commit()
	m.stats.Committed++
}

// Revert drops the pending candidate.
func (m *Manager) Revert() {
	m.ps.Revert()
	m.stats.Reverted++
}

// Propose checks the pending candidate and commits it when it passes and
// accept (if non-nil) agrees; otherwise it reverts. accept runs after every
// checker, so it may read costs computed by their Check.
func (m *Manager) Propose(accept func() bool) bool {
	if m.Check() && (accept == nil || accept()) {
		m.Commit()
		return true
	}
	m.stats.Rejected++
	m.Revert()
	return false
}
