package instance

import (
	"errors"

	"github.com/katalvlaran/lvroute/breaks"
	"github.com/katalvlaran/lvroute/energy"
	"github.com/katalvlaran/lvroute/interval"
)

// Instance is a routing problem as read from YAML.
type Instance struct {
	Name string `yaml:"name"`

	// Classes is the number of vehicle classes; every node lists one demand
	// and one force per class.
	Classes int `yaml:"classes"`

	Nodes    []Node    `yaml:"nodes"`
	Vehicles []Vehicle `yaml:"vehicles"`
}

// Node is a depot or a visit. Distances are Manhattan distances between
// coordinates.
type Node struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`

	// Demand[k] is the load picked up at the node by a class-k vehicle.
	Demand []int64 `yaml:"demand"`

	// Force[k] is the change of force at the node for a class-k vehicle.
	Force []int64 `yaml:"force"`

	// Capacity bounds the load when leaving the node; nil means unbounded.
	Capacity *interval.Interval `yaml:"capacity"`

	// Service is the time spent at the node.
	Service int64 `yaml:"service"`

	// Penalty is paid when the node is left unperformed.
	Penalty int64 `yaml:"penalty"`
}

// Vehicle is one path of the instance.
type Vehicle struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	Class int `yaml:"class"`

	// Capacity bounds the load along the route; nil means unbounded.
	Capacity *interval.Interval `yaml:"capacity"`

	Energy        energy.EnergyCost `yaml:"energy"`
	ForceStartMin int64             `yaml:"force_start_min"`
	ForceEndMin   int64             `yaml:"force_end_min"`
	CostWhenEmpty bool              `yaml:"cost_when_empty"`

	// Shift bounds both the start and the end time; nil means unbounded.
	Shift *interval.Interval `yaml:"shift"`

	// MaxSpan bounds end − start; zero means unbounded.
	MaxSpan int64 `yaml:"max_span"`

	Breaks     []breaks.VehicleBreak    `yaml:"breaks"`
	Interbreak []breaks.InterbreakLimit `yaml:"interbreak"`
}

// Sentinel errors returned by Parse, Load and Validate.
var (
	// ErrNoNodes indicates an instance without nodes.
	ErrNoNodes = errors.New("instance: no nodes")

	// ErrNoVehicles indicates an instance without vehicles.
	ErrNoVehicles = errors.New("instance: no vehicles")

	// ErrClassCount indicates a node whose demand or force list does not have one entry per class.
	ErrClassCount = errors.New("instance: per-class list does not match the number of classes")

	// ErrBadVehicle indicates a vehicle with an invalid terminal or class.
	ErrBadVehicle = errors.New("instance: invalid vehicle")

	// ErrNegative indicates a negative service time, penalty or span.
	ErrNegative = errors.New("instance: negative value")
)
