package instance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/breaks"
	"github.com/katalvlaran/lvroute/dimension"
	"github.com/katalvlaran/lvroute/energy"
	"github.com/katalvlaran/lvroute/filter"
	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
)

// Model is an instance wired to its own PathState, checkers and manager.
// Models share nothing: build one per goroutine.
type Model struct {
	Instance  *Instance
	PathState *pathstate.PathState
	Manager   *filter.Manager

	Load   *dimension.Checker
	Breaks *breaks.Checker
	Energy *energy.Checker
}

// Build creates a PathState with every vehicle empty and registers the load,
// breaks and energy checkers, in that order, on a new manager.
func (in *Instance) Build(opts ...filter.Option) (*Model, error) {
	ps, err := pathstate.New(len(in.Nodes), in.Starts(), in.Ends())
	if err != nil {
		return nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	m := &Model{Instance: in, PathState: ps}
	if m.Load, err = dimension.NewChecker(ps, in.loadConfig()); err != nil {
		return nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	if m.Breaks, err = breaks.NewChecker(ps, in.breaksData()); err != nil {
		return nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	if m.Energy, err = energy.NewChecker(ps, in.energyConfig()); err != nil {
		return nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	if m.Manager, err = filter.NewManager(ps, opts...); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name    string
		checker filter.Checker
	}{{"load", m.Load}, {"breaks", m.Breaks}, {"energy", m.Energy}} {
		if err = m.Manager.Register(c.name, c.checker); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func orUnbounded(iv *interval.Interval) interval.Interval {
	if iv == nil {
		return interval.Unbounded()
	}
	return *iv
}

// loadConfig: the load changes by the demand of the node entered.
func (in *Instance) loadConfig() dimension.Config {
	cfg := dimension.Config{
		PathCapacity:   make([]interval.Interval, len(in.Vehicles)),
		PathClass:      make([]int, len(in.Vehicles)),
		DemandPerClass: make([]dimension.DemandFunc, in.Classes),
		NodeCapacity:   make([]interval.Interval, len(in.Nodes)),
	}
	for v, veh := range in.Vehicles {
		cfg.PathCapacity[v] = orUnbounded(veh.Capacity)
		cfg.PathClass[v] = veh.Class
	}
	for k := range cfg.DemandPerClass {
		cfg.DemandPerClass[k] = func(_, to int) interval.Interval {
			return interval.Point(in.Nodes[to].Demand[k])
		}
	}
	for n, node := range in.Nodes {
		cfg.NodeCapacity[n] = orUnbounded(node.Capacity)
	}
	return cfg
}

func (in *Instance) energyConfig() energy.Config {
	cfg := energy.Config{
		ForcePerClass:    make([]energy.ForceFunc, in.Classes),
		DistancePerClass: []energy.DistanceFunc{in.Distance},
	}
	for k := range cfg.ForcePerClass {
		cfg.ForcePerClass[k] = func(node int) int64 { return in.Nodes[node].Force[k] }
	}
	for _, veh := range in.Vehicles {
		cfg.ForceStartMin = append(cfg.ForceStartMin, veh.ForceStartMin)
		cfg.ForceEndMin = append(cfg.ForceEndMin, veh.ForceEndMin)
		cfg.ForceClass = append(cfg.ForceClass, veh.Class)
		cfg.DistanceClass = append(cfg.DistanceClass, 0)
		cfg.PathEnergyCost = append(cfg.PathEnergyCost, veh.Energy)
		cfg.PathHasCostWhenEmpty = append(cfg.PathHasCostWhenEmpty, veh.CostWhenEmpty)
	}
	return cfg
}

// breaksData: every listed break may be performed.
func (in *Instance) breaksData() []breaks.PathData {
	data := make([]breaks.PathData, len(in.Vehicles))
	for v, veh := range in.Vehicles {
		span := interval.Interval{Min: 0, Max: math.MaxInt64}
		if veh.MaxSpan > 0 {
			span.Max = veh.MaxSpan
		}
		data[v] = breaks.PathData{
			InterbreakLimits: veh.Interbreak,
			StartCumul:       orUnbounded(veh.Shift),
			EndCumul:         orUnbounded(veh.Shift),
			TotalTransit:     interval.Interval{Min: 0, Max: math.MaxInt64},
			Span:             span,
			Transit:          in.Travel,
		}
		for _, br := range veh.Breaks {
			br.IsPerformedMax = true
			data[v].VehicleBreaks = append(data[v].VehicleBreaks, br)
		}
	}
	return data
}

// Penalty returns the total penalty of the nodes that are on no route.
func (m *Model) Penalty() int64 {
	var total int64
	for n, node := range m.Instance.Nodes {
		if p := m.PathState.Path(n); p == pathstate.Loop || p == pathstate.Unassigned {
			total = interval.CapAdd(total, node.Penalty)
		}
	}
	return total
}

// Objective returns the committed energy cost plus the unperformed penalty.
func (m *Model) Objective() int64 {
	return interval.CapAdd(m.Energy.CommittedCost(), m.Penalty())
}

// Routes returns the committed route of every vehicle.
func (m *Model) Routes() [][]int {
	out := make([][]int, m.PathState.NumPaths())
	for p := range out {
		for n := range m.PathState.Nodes(p) {
			out[p] = append(out[p], n)
		}
	}
	return out
}
