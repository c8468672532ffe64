// Package breaks is a light feasibility test of driver breaks.
//
// For each changed path it combines the total transit of the route, the
// breaks that must or may be performed, and the interbreak limits (at most
// MaxInterbreakDuration of driving without a break of MinBreakDuration),
// and tightens the bounds of the span and of the start/end cumuls. It may
// accept infeasible routes, never rejects feasible ones.
//
// Relax restores the initial bounds of the changed paths; call it before
// Check. The filter manager does so.
package breaks
