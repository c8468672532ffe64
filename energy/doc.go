// Package energy prices the candidate routes of a PathState by the work a
// vehicle does: force times distance, split at a per-path threshold.
//
// The force on arc (a, b) is the running force after node a. Along the
// route the force changes by force(node) at each node; the start force is
// the smallest value that keeps the force non-negative everywhere, at
// least ForceStartMin, and lets the route end with at least ForceEndMin.
// An arc of force f and distance d costs
//
//	min(f, th)·d·below + max(0, f − th)·d·above
//
// Committed routes are indexed by a range-minimum query over relative
// forces and two weighted wavelet trees (distance, and force·distance), so
// an indexed chain is priced in O(log) whatever its length.
//
// Checker.Check never rejects: read AcceptedCost and compare it to a bound
// or to CommittedCost.
package energy
