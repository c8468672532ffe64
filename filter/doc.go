// Package filter runs a set of checkers over the candidate of a PathState
// in a fixed order, and commits or reverts it.
package filter
