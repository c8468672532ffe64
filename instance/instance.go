package instance

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the YAML instance at path.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	in, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Parse decodes and validates a YAML instance. Unknown fields are errors.
func Parse(data []byte) (*Instance, error) {
	var in Instance
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Validate checks the structural consistency of the instance. Path-level
// consistency (duplicate terminals, empty capacities) is checked again when
// the checkers are built.
func (in *Instance) Validate() error {
	if len(in.Nodes) == 0 {
		return ErrNoNodes
	}
	if len(in.Vehicles) == 0 {
		return ErrNoVehicles
	}
	if in.Classes <= 0 {
		return fmt.Errorf("%w: %d classes", ErrClassCount, in.Classes)
	}
	for i, n := range in.Nodes {
		if len(n.Demand) != in.Classes || len(n.Force) != in.Classes {
			return fmt.Errorf("%w: node %d", ErrClassCount, i)
		}
		if n.Service < 0 || n.Penalty < 0 {
			return fmt.Errorf("%w: node %d", ErrNegative, i)
		}
	}
	for v, veh := range in.Vehicles {
		if veh.Start < 0 || veh.Start >= len(in.Nodes) || veh.End < 0 || veh.End >= len(in.Nodes) {
			return fmt.Errorf("%w: vehicle %d terminals %d → %d", ErrBadVehicle, v, veh.Start, veh.End)
		}
		if veh.Class < 0 || veh.Class >= in.Classes {
			return fmt.Errorf("%w: vehicle %d class %d", ErrBadVehicle, v, veh.Class)
		}
		if veh.MaxSpan < 0 {
			return fmt.Errorf("%w: vehicle %d max span", ErrNegative, v)
		}
	}
	return nil
}

// Distance returns the Manhattan distance between nodes a and b.
func (in *Instance) Distance(a, b int) int64 {
	dx, dy := in.Nodes[a].X-in.Nodes[b].X, in.Nodes[a].Y-in.Nodes[b].Y
	return max(dx, -dx) + max(dy, -dy)
}

// Travel returns the service time at a plus the distance to b.
func (in *Instance) Travel(a, b int) int64 {
	return in.Nodes[a].Service + in.Distance(a, b)
}

// Starts returns the start node of every vehicle.
func (in *Instance) Starts() []int {
	out := make([]int, len(in.Vehicles))
	for v, veh := range in.Vehicles {
		out[v] = veh.Start
	}
	return out
}

// Ends returns the end node of every vehicle.
func (in *Instance) Ends() []int {
	out := make([]int, len(in.Vehicles))
	for v, veh := range in.Vehicles {
		out[v] = veh.End
	}
	return out
}
