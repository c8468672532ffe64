// Package instance reads routing instances from YAML and wires them to a
// PathState, the load, breaks and energy checkers, and a filter manager.
package instance
